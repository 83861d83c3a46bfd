// Command advisor asks about an event on the terminal and reports how
// advisable it is to hold it under one or more weather prediction models.
//
// Usage:
//
//	go run ./cmd/advisor -data data/weather_data.csv -bonus literal
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/event-advisor/internal/adapter/csvfile"
	"github.com/couchcryptid/event-advisor/internal/advisability"
	"github.com/couchcryptid/event-advisor/internal/assess"
	"github.com/couchcryptid/event-advisor/internal/observability"
)

func main() {
	dataPath := flag.String("data", "data/weather_data.csv", "path to the weather history CSV")
	bonus := flag.String("bonus", string(advisability.BonusLiteral), "temperature bonus mode: literal or cumulative")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	bonusMode, err := advisability.ParseBonusMode(*bonus)
	if err != nil {
		fatal(err)
	}

	dataset, err := csvfile.Load(*dataPath)
	if err != nil {
		fatal(err)
	}

	svc := assess.New(dataset, bonusMode, nil, logger, observability.NewMetrics())

	if err := newSession(os.Stdin, os.Stdout, svc).run(context.Background()); err != nil && !errors.Is(err, io.EOF) {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "advisor:", err)
	os.Exit(1)
}
