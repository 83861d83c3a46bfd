package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// WindDirection is one of the 16 points of the compass.
type WindDirection string

const (
	North          WindDirection = "N"
	NorthNorthEast WindDirection = "NNE"
	NorthEast      WindDirection = "NE"
	EastNorthEast  WindDirection = "ENE"
	East           WindDirection = "E"
	EastSouthEast  WindDirection = "ESE"
	SouthEast      WindDirection = "SE"
	SouthSouthEast WindDirection = "SSE"
	South          WindDirection = "S"
	SouthSouthWest WindDirection = "SSW"
	SouthWest      WindDirection = "SW"
	WestSouthWest  WindDirection = "WSW"
	West           WindDirection = "W"
	WestNorthWest  WindDirection = "WNW"
	NorthWest      WindDirection = "NW"
	NorthNorthWest WindDirection = "NNW"
)

// compassPoints lists the directions clockwise from north.
var compassPoints = []WindDirection{
	North, NorthNorthEast, NorthEast, EastNorthEast,
	East, EastSouthEast, SouthEast, SouthSouthEast,
	South, SouthSouthWest, SouthWest, WestSouthWest,
	West, WestNorthWest, NorthWest, NorthNorthWest,
}

// ParseWindDirection normalizes s and checks it against the compass points.
func ParseWindDirection(s string) (WindDirection, error) {
	d := WindDirection(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWindDirection, s)
	}
	return d, nil
}

// Valid reports whether d is one of the 16 compass points.
func (d WindDirection) Valid() bool {
	for _, p := range compassPoints {
		if d == p {
			return true
		}
	}
	return false
}

// WeatherRecord holds one day's measurements.
type WeatherRecord struct {
	Date             time.Time     `json:"date,omitempty"`
	Rainfall         float64       `json:"rainfall"`          // mm
	HighTemperature  float64       `json:"high_temperature"`  // °C
	LowTemperature   float64       `json:"low_temperature"`   // °C
	Humidity         int           `json:"humidity"`          // percent, 0-100
	CloudCover       int           `json:"cloud_cover"`       // 0 (clear) to 9
	AverageWindSpeed float64       `json:"average_wind_speed"`
	MaximumWindSpeed float64       `json:"maximum_wind_speed"`
	AirPressure      float64       `json:"air_pressure"` // hPa
	WindDirection    WindDirection `json:"wind_direction"`
}

// Validate checks the record against the ranges the prediction models rely on.
func (r WeatherRecord) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"rainfall", r.Rainfall},
		{"high temperature", r.HighTemperature},
		{"low temperature", r.LowTemperature},
		{"average wind speed", r.AverageWindSpeed},
		{"maximum wind speed", r.MaximumWindSpeed},
		{"air pressure", r.AirPressure},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %g is not a finite number", ErrInvalidRecord, f.name, f.v)
		}
	}

	switch {
	case r.Rainfall < 0:
		return fmt.Errorf("%w: rainfall %g is negative", ErrInvalidRecord, r.Rainfall)
	case r.LowTemperature > r.HighTemperature:
		return fmt.Errorf("%w: low temperature %g above high temperature %g", ErrInvalidRecord, r.LowTemperature, r.HighTemperature)
	case r.Humidity < 0 || r.Humidity > 100:
		return fmt.Errorf("%w: humidity %d outside 0-100", ErrInvalidRecord, r.Humidity)
	case r.CloudCover < 0 || r.CloudCover > 9:
		return fmt.Errorf("%w: cloud cover %d outside 0-9", ErrInvalidRecord, r.CloudCover)
	case r.AverageWindSpeed < 0:
		return fmt.Errorf("%w: average wind speed %g is negative", ErrInvalidRecord, r.AverageWindSpeed)
	case r.MaximumWindSpeed < r.AverageWindSpeed:
		return fmt.Errorf("%w: maximum wind speed %g below average %g", ErrInvalidRecord, r.MaximumWindSpeed, r.AverageWindSpeed)
	case !r.WindDirection.Valid():
		return fmt.Errorf("%w: %w: %q", ErrInvalidRecord, ErrInvalidWindDirection, r.WindDirection)
	}
	return nil
}
