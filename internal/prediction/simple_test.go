package prediction_test

import (
	"testing"

	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/couchcryptid/event-advisor/internal/prediction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleAverage_Window(t *testing.T) {
	ds := domain.NewDataset(
		day(rain(50), temps(44, -10)), // outside the window
		day(rain(1), temps(20, 5), humid(40), cloud(1), wind(2, 6)),
		day(rain(2), temps(35, 2), humid(60), cloud(4), wind(4, 9)),
		day(rain(3), temps(25, 8), humid(71), cloud(7), wind(6, 12)),
	)
	s, err := prediction.NewSimpleAverage(ds, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, s.NumberOfDays())
	assert.Equal(t, 18, s.ChanceOfRain()) // mean 2mm * 9
	assert.InDelta(t, 35.0, s.HighTemperature(), 1e-9, "highest high, not the mean")
	assert.InDelta(t, 2.0, s.LowTemperature(), 1e-9, "lowest low, not the mean")
	assert.Equal(t, 57, s.Humidity()) // 171/3 = 57
	assert.Equal(t, 4, s.CloudCover())
	assert.InDelta(t, 4.0, s.WindSpeed(), 1e-9)
}

func TestSimpleAverage_ChanceOfRainCapped(t *testing.T) {
	ds := domain.NewDataset(day(rain(20)), day(rain(20)))
	s, err := prediction.NewSimpleAverage(ds, 2)
	require.NoError(t, err)
	assert.Equal(t, 100, s.ChanceOfRain())
}

func TestSimpleAverage_RoundsHalfToEven(t *testing.T) {
	ds := domain.NewDataset(
		day(humid(50), wind(3, 5), cloud(2)),
		day(humid(51), wind(4, 5), cloud(3)),
	)
	s, err := prediction.NewSimpleAverage(ds, 2)
	require.NoError(t, err)

	assert.Equal(t, 50, s.Humidity())           // 50.5
	assert.InDelta(t, 4.0, s.WindSpeed(), 1e-9) // 3.5
	assert.Equal(t, 2, s.CloudCover())          // 2.5
}

func TestSimpleAverage_DividesByRequestedDays(t *testing.T) {
	ds := domain.NewDataset(
		day(rain(4), temps(30, 10), humid(60)),
		day(rain(4), temps(22, 12), humid(60)),
	)
	exact, err := prediction.NewSimpleAverage(ds, 2)
	require.NoError(t, err)
	over, err := prediction.NewSimpleAverage(ds, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, over.NumberOfDays())

	// Extremes are unaffected by asking for more days than exist.
	assert.Equal(t, exact.HighTemperature(), over.HighTemperature())
	assert.Equal(t, exact.LowTemperature(), over.LowTemperature())

	// Means divide the clamped window's sum by the requested count.
	assert.Equal(t, 36, exact.ChanceOfRain())
	assert.Equal(t, 18, over.ChanceOfRain())
	assert.Equal(t, 60, exact.Humidity())
	assert.Equal(t, 30, over.Humidity())
}
