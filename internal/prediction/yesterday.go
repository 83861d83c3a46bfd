package prediction

import (
	"fmt"

	"github.com/couchcryptid/event-advisor/internal/domain"
)

// Yesterday predicts that today will look like the most recent day.
type Yesterday struct {
	yesterday domain.WeatherRecord
}

// NewYesterday captures the most recent record of ds.
func NewYesterday(ds *domain.Dataset) (*Yesterday, error) {
	rec, err := ds.Latest()
	if err != nil {
		return nil, fmt.Errorf("build yesterday prediction: %w", err)
	}
	return &Yesterday{yesterday: rec}, nil
}

func (y *Yesterday) Kind() Kind        { return KindYesterday }
func (y *Yesterday) Name() string      { return KindYesterday.DisplayName() }
func (y *Yesterday) NumberOfDays() int { return 1 }

// ChanceOfRain maps yesterday's rainfall onto four likelihood steps.
func (y *Yesterday) ChanceOfRain() int {
	switch rain := y.yesterday.Rainfall; {
	case rain < 0.1:
		return 0
	case rain < 3:
		return 40
	case rain < 8:
		return 75
	default:
		return 90
	}
}

func (y *Yesterday) HighTemperature() float64 { return y.yesterday.HighTemperature }
func (y *Yesterday) LowTemperature() float64  { return y.yesterday.LowTemperature }
func (y *Yesterday) Humidity() int            { return y.yesterday.Humidity }
func (y *Yesterday) CloudCover() int          { return y.yesterday.CloudCover }
func (y *Yesterday) WindSpeed() float64       { return y.yesterday.AverageWindSpeed }

func (y *Yesterday) sealed() {}
