package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/couchcryptid/event-advisor/internal/advisability"
	"github.com/couchcryptid/event-advisor/internal/assess"
	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/couchcryptid/event-advisor/internal/observability"
	"github.com/couchcryptid/event-advisor/internal/prediction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAssessor struct {
	inner assess.Assessor
	got   []assess.Request
}

func (r *recordingAssessor) Assess(ctx context.Context, req assess.Request) (domain.Assessment, error) {
	r.got = append(r.got, req)
	return r.inner.Assess(ctx, req)
}

func hotDryService() *recordingAssessor {
	rec := domain.WeatherRecord{
		HighTemperature: 40,
		LowTemperature:  10,
		Humidity:        50,
		AirPressure:     1013,
		WindDirection:   domain.North,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := assess.New(domain.NewDataset(rec, rec, rec), advisability.BonusLiteral, nil, logger, observability.NewMetricsForTesting())
	return &recordingAssessor{inner: svc}
}

func runSession(t *testing.T, a assess.Assessor, input string) (string, error) {
	t.Helper()
	var out strings.Builder
	err := newSession(strings.NewReader(input), &out, a).run(context.Background())
	return out.String(), err
}

func TestSession_TwoModels(t *testing.T) {
	a := hotDryService()
	input := strings.Join([]string{
		"Picnic", "yes", "N", "12",
		"2", "3",
		"Y",
		"1",
		"no",
	}, "\n") + "\n"

	out, err := runSession(t, a, input)
	require.NoError(t, err)

	assert.Contains(t, out, "Based on the Simple prediction model, the advisability of holding Picnic is 2.0.")
	assert.Contains(t, out, "Based on the Yesterday's weather model, the advisability of holding Picnic is 2.0.")
	require.Len(t, a.got, 2)
	want := domain.Event{Name: "Picnic", Outdoors: true, CoverAvailable: false, Hour: 12}
	assert.Equal(t, assess.Request{Event: want, Model: prediction.KindSimple, Days: 3}, a.got[0])
	assert.Equal(t, prediction.KindYesterday, a.got[1].Model)
}

func TestSession_RepromptsOnBadInput(t *testing.T) {
	a := hotDryService()
	input := strings.Join([]string{
		"Fete",
		"maybe", "y",
		"?", "yes",
		"noon", "24", "-1", "14",
		"7", "3", "zero", "0", "2",
		"nah", "n",
	}, "\n") + "\n"

	out, err := runSession(t, a, input)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Please enter a valid value."))
	assert.Equal(t, 2, strings.Count(out, "Please enter an integer time value.\n"))
	assert.Contains(t, out, "Please enter an integer time value from 0 up to, but not including 24.")
	assert.Contains(t, out, "Please enter an existing model!")
	assert.Equal(t, 2, strings.Count(out, "Please enter a whole number of days, at least 1."))
	assert.Contains(t, out, "Please enter 'Y' or 'Yes' or 'N' or 'No'.")

	require.Len(t, a.got, 1)
	assert.Equal(t, assess.Request{
		Event: domain.Event{Name: "Fete", Outdoors: true, CoverAvailable: true, Hour: 14},
		Model: prediction.KindSophisticated,
		Days:  2,
	}, a.got[0])
}

func TestSession_EOF(t *testing.T) {
	_, err := runSession(t, hotDryService(), "Picnic\nyes\n")
	assert.ErrorIs(t, err, io.EOF)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "2.0", formatScore(2))
	assert.Equal(t, "-5.0", formatScore(-5))
	assert.Equal(t, "1.35", formatScore(1.35))
}
