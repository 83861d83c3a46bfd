package prediction

import (
	"fmt"
	"math"

	"github.com/couchcryptid/event-advisor/internal/domain"
)

// rainyWinds are the easterly directions that carry moisture in; a
// yesterday's wind from any of them raises the chance of rain.
var rainyWinds = map[domain.WindDirection]bool{
	domain.NorthNorthEast: true,
	domain.NorthEast:      true,
	domain.EastNorthEast:  true,
	domain.East:           true,
	domain.EastSouthEast:  true,
	domain.SouthEast:      true,
	domain.SouthSouthEast: true,
}

// Sophisticated starts from n-day averages and nudges each quantity by how
// yesterday's air pressure compares to the window's mean pressure.
type Sophisticated struct {
	w         window
	yesterday domain.WeatherRecord
}

// NewSophisticated captures the last days records of ds plus the most recent
// record on its own.
func NewSophisticated(ds *domain.Dataset, days int) (*Sophisticated, error) {
	w, err := newWindow(ds, days)
	if err != nil {
		return nil, fmt.Errorf("build sophisticated prediction: %w", err)
	}
	rec, err := ds.Latest()
	if err != nil {
		return nil, fmt.Errorf("build sophisticated prediction: %w", err)
	}
	return &Sophisticated{w: w, yesterday: rec}, nil
}

func (s *Sophisticated) Kind() Kind        { return KindSophisticated }
func (s *Sophisticated) Name() string      { return KindSophisticated.DisplayName() }
func (s *Sophisticated) NumberOfDays() int { return s.w.days }

// pressureTrend compares yesterday's pressure with the window mean: -1 when
// lower, +1 when higher, 0 when equal.
func (s *Sophisticated) pressureTrend() int {
	mean := s.w.mean(airPressure)
	switch p := s.yesterday.AirPressure; {
	case p < mean:
		return -1
	case p > mean:
		return 1
	default:
		return 0
	}
}

func (s *Sophisticated) ChanceOfRain() int {
	rain := s.w.mean(rainfall)
	if s.pressureTrend() < 0 {
		rain *= 10
	} else {
		rain *= 7
	}
	if rainyWinds[s.yesterday.WindDirection] {
		rain *= 1.2
	}
	return round(math.Min(100, rain))
}

func (s *Sophisticated) HighTemperature() float64 {
	high := s.w.mean(highTemperature)
	if s.pressureTrend() > 0 {
		high += 2
	}
	return high
}

func (s *Sophisticated) LowTemperature() float64 {
	low := s.w.mean(lowTemperature)
	if s.pressureTrend() < 0 {
		low -= 2
	}
	return low
}

func (s *Sophisticated) Humidity() int {
	h := s.w.mean(humidity)
	switch s.pressureTrend() {
	case -1:
		h += 15
	case 1:
		h -= 15
	}
	return round(clamp(h, 0, 100))
}

func (s *Sophisticated) CloudCover() int {
	c := s.w.mean(cloudCover)
	if s.pressureTrend() < 0 {
		c += 2
	}
	return round(math.Min(9, c))
}

// WindSpeed raises the average by a fifth when yesterday's gusts ran above
// four times it.
func (s *Sophisticated) WindSpeed() float64 {
	wind := s.w.mean(windSpeed)
	if s.yesterday.MaximumWindSpeed > 4*wind {
		wind *= 1.2
	}
	return float64(round(wind))
}

func (s *Sophisticated) sealed() {}
