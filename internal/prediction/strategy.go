// Package prediction derives a one-day weather forecast from the historical
// dataset using one of three models.
package prediction

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/event-advisor/internal/domain"
)

// ErrUnknownKind is returned by ParseKind and New for unrecognized models.
var ErrUnknownKind = errors.New("unknown prediction model")

// Kind tags the closed set of prediction models.
type Kind string

const (
	KindYesterday     Kind = "yesterday"
	KindSimple        Kind = "simple"
	KindSophisticated Kind = "sophisticated"
)

// Kinds lists the models in menu order.
var Kinds = []Kind{KindYesterday, KindSimple, KindSophisticated}

// ParseKind accepts a model name or its menu number ("1", "2", "3").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", string(KindYesterday):
		return KindYesterday, nil
	case "2", string(KindSimple):
		return KindSimple, nil
	case "3", string(KindSophisticated):
		return KindSophisticated, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// DisplayName is the human-readable model name.
func (k Kind) DisplayName() string {
	switch k {
	case KindYesterday:
		return "Yesterday's weather"
	case KindSimple:
		return "Simple prediction"
	case KindSophisticated:
		return "Sophisticated prediction"
	default:
		return string(k)
	}
}

// UsesWindow reports whether the model averages over a number of days.
func (k Kind) UsesWindow() bool {
	return k == KindSimple || k == KindSophisticated
}

// Strategy is implemented by the three prediction models only. Every
// accessor is a pure function of the data captured at construction.
type Strategy interface {
	Kind() Kind
	Name() string
	NumberOfDays() int

	ChanceOfRain() int // percent, 0-100
	HighTemperature() float64
	LowTemperature() float64
	Humidity() int   // percent, 0-100
	CloudCover() int // 0-9
	WindSpeed() float64

	sealed()
}

// New builds the strategy for kind. days is ignored by the yesterday model.
func New(kind Kind, ds *domain.Dataset, days int) (Strategy, error) {
	switch kind {
	case KindYesterday:
		return NewYesterday(ds)
	case KindSimple:
		return NewSimpleAverage(ds, days)
	case KindSophisticated:
		return NewSophisticated(ds, days)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Snapshot captures every accessor of s.
func Snapshot(s Strategy) domain.Forecast {
	return domain.Forecast{
		ChanceOfRain:    s.ChanceOfRain(),
		HighTemperature: s.HighTemperature(),
		LowTemperature:  s.LowTemperature(),
		Humidity:        s.Humidity(),
		CloudCover:      s.CloudCover(),
		WindSpeed:       s.WindSpeed(),
	}
}

// window holds the trailing records an averaging model works over. Sums are
// divided by the requested day count even when the dataset held fewer days.
type window struct {
	records []domain.WeatherRecord
	days    int
}

func newWindow(ds *domain.Dataset, days int) (window, error) {
	if ds.Len() == 0 {
		return window{}, fmt.Errorf("build prediction window: %w", domain.ErrInvalidDataset)
	}
	if days < 1 {
		return window{}, fmt.Errorf("build prediction window: %w: got %d", domain.ErrInvalidDays, days)
	}
	return window{records: ds.MostRecent(days), days: days}, nil
}

func (w window) mean(field func(domain.WeatherRecord) float64) float64 {
	var total float64
	for _, r := range w.records {
		total += field(r)
	}
	return total / float64(w.days)
}

func (w window) max(field func(domain.WeatherRecord) float64) float64 {
	best := field(w.records[0])
	for _, r := range w.records[1:] {
		best = math.Max(best, field(r))
	}
	return best
}

func (w window) min(field func(domain.WeatherRecord) float64) float64 {
	best := field(w.records[0])
	for _, r := range w.records[1:] {
		best = math.Min(best, field(r))
	}
	return best
}

func rainfall(r domain.WeatherRecord) float64        { return r.Rainfall }
func highTemperature(r domain.WeatherRecord) float64 { return r.HighTemperature }
func lowTemperature(r domain.WeatherRecord) float64  { return r.LowTemperature }
func humidity(r domain.WeatherRecord) float64        { return float64(r.Humidity) }
func cloudCover(r domain.WeatherRecord) float64      { return float64(r.CloudCover) }
func windSpeed(r domain.WeatherRecord) float64       { return r.AverageWindSpeed }
func airPressure(r domain.WeatherRecord) float64     { return r.AirPressure }

// round rounds half to even.
func round(v float64) int {
	return int(math.RoundToEven(v))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

var (
	_ Strategy = (*Yesterday)(nil)
	_ Strategy = (*SimpleAverage)(nil)
	_ Strategy = (*Sophisticated)(nil)
)
