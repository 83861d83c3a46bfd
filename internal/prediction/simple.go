package prediction

import (
	"fmt"
	"math"

	"github.com/couchcryptid/event-advisor/internal/domain"
)

// SimpleAverage predicts from plain averages over the past n days, except
// for the temperatures, which take the extremes of the window.
type SimpleAverage struct {
	w window
}

// NewSimpleAverage captures the last days records of ds. Asking for more
// days than ds holds uses every record.
func NewSimpleAverage(ds *domain.Dataset, days int) (*SimpleAverage, error) {
	w, err := newWindow(ds, days)
	if err != nil {
		return nil, fmt.Errorf("build simple prediction: %w", err)
	}
	return &SimpleAverage{w: w}, nil
}

func (s *SimpleAverage) Kind() Kind        { return KindSimple }
func (s *SimpleAverage) Name() string      { return KindSimple.DisplayName() }
func (s *SimpleAverage) NumberOfDays() int { return s.w.days }

func (s *SimpleAverage) ChanceOfRain() int {
	return round(math.Min(100, s.w.mean(rainfall)*9))
}

// HighTemperature is the highest high of the window.
func (s *SimpleAverage) HighTemperature() float64 { return s.w.max(highTemperature) }

// LowTemperature is the lowest low of the window.
func (s *SimpleAverage) LowTemperature() float64 { return s.w.min(lowTemperature) }

func (s *SimpleAverage) Humidity() int      { return round(s.w.mean(humidity)) }
func (s *SimpleAverage) CloudCover() int    { return round(s.w.mean(cloudCover)) }
func (s *SimpleAverage) WindSpeed() float64 { return float64(round(s.w.mean(windSpeed))) }

func (s *SimpleAverage) sealed() {}
