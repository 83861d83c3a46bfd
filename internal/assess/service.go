// Package assess turns an event and a choice of prediction model into a
// scored, timestamped assessment and hands it to downstream consumers.
package assess

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/event-advisor/internal/advisability"
	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/couchcryptid/event-advisor/internal/observability"
	"github.com/couchcryptid/event-advisor/internal/prediction"
)

// Request asks for one event to be checked against one prediction model.
// Days is ignored by the yesterday model.
type Request struct {
	Event domain.Event
	Model prediction.Kind
	Days  int
}

// Assessor produces assessments.
type Assessor interface {
	Assess(ctx context.Context, req Request) (domain.Assessment, error)
}

// Publisher forwards finished assessments, e.g. to a Kafka topic.
type Publisher interface {
	Publish(ctx context.Context, a domain.Assessment) error
}

// Service scores requests against a read-only dataset.
type Service struct {
	dataset   *domain.Dataset
	bonusMode advisability.BonusMode
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Service. Pass a nil publisher to keep assessments local.
func New(ds *domain.Dataset, bonusMode advisability.BonusMode, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	metrics.DatasetRecords.Set(float64(ds.Len()))
	return &Service{
		dataset:   ds,
		bonusMode: bonusMode,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the dataset holds at least one record.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.dataset.Len() == 0 {
		return domain.ErrInvalidDataset
	}
	return nil
}

// Assess builds the requested prediction, scores the event against it and
// publishes the result. A failed publish is logged, not returned.
func (s *Service) Assess(ctx context.Context, req Request) (domain.Assessment, error) {
	start := time.Now()

	a, err := s.evaluate(req)
	if err != nil {
		s.metrics.AssessmentErrors.WithLabelValues(errorReason(err)).Inc()
		return domain.Assessment{}, err
	}

	s.metrics.Assessments.WithLabelValues(a.Model).Inc()
	s.metrics.AdvisabilityScore.WithLabelValues(a.Model).Observe(a.Advisability)
	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("assessment computed",
		"id", a.ID,
		"event", a.Event.Name,
		"model", a.Model,
		"days", a.Days,
		"advisability", a.Advisability,
	)

	s.publish(ctx, a)
	return a, nil
}

func (s *Service) evaluate(req Request) (domain.Assessment, error) {
	if err := req.Event.Validate(); err != nil {
		return domain.Assessment{}, err
	}

	model, err := prediction.New(req.Model, s.dataset, req.Days)
	if err != nil {
		return domain.Assessment{}, err
	}

	scorer := advisability.New(req.Event, model, advisability.WithBonusMode(s.bonusMode))
	kind := string(model.Kind())

	return domain.Assessment{
		ID:                domain.AssessmentID(req.Event, kind, model.NumberOfDays(), string(s.bonusMode)),
		Event:             req.Event,
		Model:             kind,
		ModelName:         model.Name(),
		Days:              model.NumberOfDays(),
		Forecast:          prediction.Snapshot(model),
		TemperatureFactor: scorer.TemperatureFactor(),
		RainFactor:        scorer.RainFactor(),
		Advisability:      scorer.Advisability(),
		BonusMode:         string(s.bonusMode),
		AssessedAt:        domain.Now(),
	}, nil
}

func (s *Service) publish(ctx context.Context, a domain.Assessment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, a); err != nil {
		s.logger.Warn("publish assessment failed", "error", err, "id", a.ID)
		s.metrics.PublishErrors.Inc()
		return
	}
	s.metrics.AssessmentsPublished.Inc()
}

// errorReason maps an assessment error onto a low-cardinality metric label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDataset):
		return "dataset"
	case errors.Is(err, domain.ErrInvalidDays):
		return "days"
	case errors.Is(err, domain.ErrInvalidHour):
		return "hour"
	case errors.Is(err, prediction.ErrUnknownKind):
		return "model"
	default:
		return "other"
	}
}

// IsInputError reports whether err was caused by the request rather than
// the service.
func IsInputError(err error) bool {
	return errorReason(err) != "other" && !errors.Is(err, domain.ErrInvalidDataset)
}

var _ Assessor = (*Service)(nil)

