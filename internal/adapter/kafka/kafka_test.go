package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	a := domain.Assessment{
		ID:           "simple-0011223344556677",
		Event:        domain.Event{Name: "Picnic", Outdoors: true, Hour: 12},
		Model:        "simple",
		ModelName:    "Simple prediction",
		Days:         3,
		Forecast:     domain.Forecast{HighTemperature: 40, LowTemperature: 10, Humidity: 50},
		Advisability: 2,
		BonusMode:    "literal",
		AssessedAt:   now,
	}

	msg, err := serializeToMessage(a)
	require.NoError(t, err)

	assert.Equal(t, []byte("simple-0011223344556677"), msg.Key)
	assert.Contains(t, string(msg.Value), `"model":"simple"`)
	assert.Contains(t, string(msg.Value), `"cover_available":false`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "model", msg.Headers[0].Key)
	assert.Equal(t, []byte("simple"), msg.Headers[0].Value)
	assert.Equal(t, "assessed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var roundtrip domain.Assessment
	require.NoError(t, json.Unmarshal(msg.Value, &roundtrip))
	assert.Equal(t, a.Event, roundtrip.Event)
	assert.InDelta(t, 2.0, roundtrip.Advisability, 1e-9)
}
