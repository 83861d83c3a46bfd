// Command genweather writes a reproducible synthetic weather history in the
// CSV layout the advisor loads, and optionally a JSON fixture of assessments
// computed from it for a few sample events.
//
// Usage:
//
//	go run ./cmd/genweather \
//	  -out data/weather_data.csv \
//	  -days 90 -seed 7 \
//	  -assess-out data/mock/assessments.json
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/event-advisor/internal/adapter/csvfile"
	"github.com/couchcryptid/event-advisor/internal/advisability"
	"github.com/couchcryptid/event-advisor/internal/assess"
	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/couchcryptid/event-advisor/internal/observability"
	"github.com/couchcryptid/event-advisor/internal/prediction"
	"github.com/jonboulle/clockwork"
)

var sampleEvents = []domain.Event{
	{Name: "Picnic", Outdoors: true, Hour: 12},
	{Name: "Street fete", Outdoors: true, CoverAvailable: true, Hour: 15},
	{Name: "Stargazing", Outdoors: true, Hour: 22},
	{Name: "Dinner party", CoverAvailable: true, Hour: 19},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/weather_data.csv", "output path for the weather CSV")
	assessOut := flag.String("assess-out", "", "optional output path for an assessments JSON fixture")
	days := flag.Int("days", 90, "number of days to generate")
	seed := flag.Uint64("seed", 7, "random seed")
	start := flag.String("start", "2024-01-01", "date of the first generated day")
	flag.Parse()

	if *days < 1 {
		return fmt.Errorf("-days must be at least 1")
	}
	first, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	records, err := generate(rand.New(rand.NewPCG(*seed, *seed)), first, *days)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := csvfile.Write(&buf, records); err != nil {
		return err
	}
	if err := writeFile(*out, buf.Bytes()); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	log.Printf("wrote %d days: %s", len(records), *out)

	if *assessOut == "" {
		return nil
	}

	// Reload what was written so the fixture reflects the loader's view.
	ds, err := csvfile.Read(&buf)
	if err != nil {
		return fmt.Errorf("reload dataset: %w", err)
	}
	assessments, err := assessSamples(ds)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(assessments, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFile(*assessOut, append(data, '\n')); err != nil {
		return fmt.Errorf("writing assessments: %w", err)
	}
	log.Printf("wrote %d assessments: %s", len(assessments), *assessOut)
	return nil
}

// generate produces a plausible run of days: air pressure follows a bounded
// random walk and rain is likelier while it falls.
func generate(rng *rand.Rand, first time.Time, days int) ([]domain.WeatherRecord, error) {
	points := []domain.WindDirection{
		domain.North, domain.NorthNorthEast, domain.NorthEast, domain.EastNorthEast,
		domain.East, domain.EastSouthEast, domain.SouthEast, domain.SouthSouthEast,
		domain.South, domain.SouthSouthWest, domain.SouthWest, domain.WestSouthWest,
		domain.West, domain.WestNorthWest, domain.NorthWest, domain.NorthNorthWest,
	}

	records := make([]domain.WeatherRecord, 0, days)
	pressure := 1013.0
	for i := range days {
		prev := pressure
		pressure = clamp(pressure+rng.Float64()*8-4, 990, 1035)

		cloud := rng.IntN(10)
		rain := 0.0
		if pressure < prev && cloud > 4 {
			rain = math.Max(0, rng.NormFloat64()*5+3)
		}
		high := 18 + rng.Float64()*18
		avgWind := 4 + rng.Float64()*20

		rec := domain.WeatherRecord{
			Date:             first.AddDate(0, 0, i),
			Rainfall:         tenths(rain),
			HighTemperature:  tenths(high),
			LowTemperature:   tenths(high - 5 - rng.Float64()*8),
			Humidity:         35 + rng.IntN(60),
			CloudCover:       cloud,
			AverageWindSpeed: math.Round(avgWind),
			MaximumWindSpeed: math.Round(avgWind + 5 + rng.Float64()*30),
			AirPressure:      tenths(pressure),
			WindDirection:    points[rng.IntN(len(points))],
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("day %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// assessSamples scores every sample event under every model with a fixed
// clock so the fixture is byte-for-byte reproducible.
func assessSamples(ds *domain.Dataset) ([]domain.Assessment, error) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.April, 1, 6, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := assess.New(ds, advisability.BonusLiteral, nil, logger, observability.NewMetricsForTesting())

	assessments := make([]domain.Assessment, 0, len(sampleEvents)*len(prediction.Kinds))
	for _, e := range sampleEvents {
		for _, k := range prediction.Kinds {
			a, err := svc.Assess(context.Background(), assess.Request{Event: e, Model: k, Days: 7})
			if err != nil {
				return nil, fmt.Errorf("assess %s with %s: %w", e.Name, k, err)
			}
			assessments = append(assessments, a)
		}
	}
	return assessments, nil
}

func tenths(v float64) float64 { return math.Round(v*10) / 10 }

func clamp(v, lo, hi float64) float64 { return math.Min(hi, math.Max(lo, v)) }

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
