// Package advisability scores how well a predicted day suits a planned event.
//
// The score is the sum of a temperature factor and a rain factor, clamped to
// [-5, 5]: -5 is very bad, 0 neutral, 5 very beneficial.
package advisability

import (
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/event-advisor/internal/domain"
)

// Prediction is the forecast a Scorer reads. Every prediction.Strategy
// satisfies it.
type Prediction interface {
	ChanceOfRain() int
	HighTemperature() float64
	LowTemperature() float64
	Humidity() int
	CloudCover() int
	WindSpeed() float64
}

// BonusMode selects how the temperature factor's +1 adjustments combine.
type BonusMode string

const (
	// BonusLiteral re-derives each applicable adjustment from the base
	// factor, so any number of favorable conditions add +1 in total.
	BonusLiteral BonusMode = "literal"

	// BonusCumulative adds +1 for every favorable condition.
	BonusCumulative BonusMode = "cumulative"
)

// ParseBonusMode accepts "literal" or "cumulative"; empty means literal.
func ParseBonusMode(s string) (BonusMode, error) {
	switch BonusMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", BonusLiteral:
		return BonusLiteral, nil
	case BonusCumulative:
		return BonusCumulative, nil
	default:
		return "", fmt.Errorf("invalid bonus mode %q: want %q or %q", s, BonusLiteral, BonusCumulative)
	}
}

const (
	minAdvisability = -5
	maxAdvisability = 5
	minRainFactor   = -9

	muggyHumidity = 70
)

// Scorer combines one event with one prediction.
type Scorer struct {
	event     domain.Event
	forecast  Prediction
	bonusMode BonusMode
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithBonusMode overrides the default BonusLiteral.
func WithBonusMode(m BonusMode) Option {
	return func(s *Scorer) { s.bonusMode = m }
}

// New creates a Scorer for event and p.
func New(event domain.Event, p Prediction, opts ...Option) *Scorer {
	s := &Scorer{event: event, forecast: p, bonusMode: BonusLiteral}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BonusMode reports the mode the scorer applies.
func (s *Scorer) BonusMode() BonusMode { return s.bonusMode }

// Advisability returns the temperature and rain factors summed and clamped
// to [-5, 5].
func (s *Scorer) Advisability() float64 {
	total := s.TemperatureFactor() + s.RainFactor()
	return math.Max(minAdvisability, math.Min(maxAdvisability, total))
}

// TemperatureFactor rates the predicted temperatures for the event's hour
// and setting. It is not clamped.
func (s *Scorer) TemperatureFactor() float64 {
	high := s.forecast.HighTemperature()
	low := s.forecast.LowTemperature()

	// Muggy days feel more extreme in both directions.
	if h := s.forecast.Humidity(); h > muggyHumidity {
		adj := float64(h) / 20
		high = awayFromZero(high, adj)
		low = awayFromZero(low, adj)
	}

	hour := s.event.Hour
	daytime := hour >= 6 && hour <= 19
	night := (hour >= 0 && hour <= 5) || (hour >= 20 && hour <= 23)

	var base float64
	switch {
	case s.event.Outdoors && daytime && high >= 30:
		base = high/-5 + 6
	case high >= 45:
		base = high/-5 + 6
	case night && low < 5 && high < 45:
		base = low/5 - 1.1
	case low > 15 && high < 30:
		base = (high - low) / 5
	}

	if base >= 0 {
		return base
	}

	bonuses := 0
	if s.event.CoverAvailable {
		bonuses++
	}
	if w := s.forecast.WindSpeed(); w > 3 && w < 10 {
		bonuses++
	}
	if s.forecast.CloudCover() > 4 {
		bonuses++
	}
	if s.bonusMode == BonusLiteral {
		bonuses = min(bonuses, 1)
	}
	return base + float64(bonuses)
}

// RainFactor rates the predicted chance of rain. Strong wind replaces the
// shelter bonus with a penalty, floored at -9.
func (s *Scorer) RainFactor() float64 {
	chance := float64(s.forecast.ChanceOfRain())
	wind := s.forecast.WindSpeed()

	var base float64
	switch {
	case chance < 20:
		base = chance/-5 + 4
	case chance > 50:
		base = chance/-20 + 1
	}

	factor := base
	if s.event.Outdoors && s.event.CoverAvailable && wind < 5 {
		factor = base + 1
	}
	if base < 2 && wind > 15 {
		factor = math.Max(minRainFactor, base+wind/-15)
	}
	return factor
}

// awayFromZero grows |v| by adj, keeping its sign. Zero stays zero.
func awayFromZero(v, adj float64) float64 {
	switch {
	case v > 0:
		return v + adj
	case v < 0:
		return v - adj
	default:
		return v
	}
}
