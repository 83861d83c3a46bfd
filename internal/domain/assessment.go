package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Forecast is a snapshot of the six quantities a prediction model derives
// from the dataset.
type Forecast struct {
	ChanceOfRain    int     `json:"chance_of_rain"`
	HighTemperature float64 `json:"high_temperature"`
	LowTemperature  float64 `json:"low_temperature"`
	Humidity        int     `json:"humidity"`
	CloudCover      int     `json:"cloud_cover"`
	WindSpeed       float64 `json:"wind_speed"`
}

// Assessment is the scored outcome of checking one event against one
// prediction model.
type Assessment struct {
	ID                string    `json:"id"`
	Event             Event     `json:"event"`
	Model             string    `json:"model"`
	ModelName         string    `json:"model_name"`
	Days              int       `json:"days"`
	Forecast          Forecast  `json:"forecast"`
	TemperatureFactor float64   `json:"temperature_factor"`
	RainFactor        float64   `json:"rain_factor"`
	Advisability      float64   `json:"advisability"`
	BonusMode         string    `json:"bonus_mode"`
	AssessedAt        time.Time `json:"assessed_at"`
}

// AssessmentID produces a deterministic ID from the assessment inputs, so
// re-checking the same event with the same model yields the same key
// downstream.
func AssessmentID(e Event, model string, days int, bonusMode string) string {
	input := fmt.Sprintf("%s|%t|%t|%d|%s|%d|%s", e.Name, e.Outdoors, e.CoverAvailable, e.Hour, model, days, bonusMode)
	hash := sha256.Sum256([]byte(input))
	return model + "-" + hex.EncodeToString(hash[:8])
}
