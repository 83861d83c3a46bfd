// Package domain models daily weather observations and the events whose
// suitability is judged against predictions derived from them.
//
// # Records
//
// A [WeatherRecord] is one day of measurements:
//
//	rainfall            mm, ≥ 0
//	high/low temperature °C, low ≤ high
//	humidity            percent, 0–100
//	cloud cover         0 (clear) to 9 (overcast)
//	average/max wind    max ≥ average
//	air pressure        hPa
//	wind direction      one of N, NNE, NE, ENE, E, ESE, SE, SSE,
//	                    S, SSW, SW, WSW, W, WNW, NW, NNW
//
// # Dataset
//
// A [Dataset] keeps records oldest first. [Dataset.MostRecent] returns the
// trailing window used by the prediction models; asking for more days than
// are stored silently returns every record.
//
// # Events and assessments
//
// An [Event] is immutable once created. An [Assessment] captures the forecast
// snapshot, both scoring factors and the clamped advisability for one event
// and one prediction model. Assessment IDs are deterministic hashes of the
// inputs; see [AssessmentID].
package domain
