//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/event-advisor/internal/adapter/kafka"
	"github.com/couchcryptid/event-advisor/internal/advisability"
	"github.com/couchcryptid/event-advisor/internal/assess"
	"github.com/couchcryptid/event-advisor/internal/config"
	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/couchcryptid/event-advisor/internal/observability"
	"github.com/couchcryptid/event-advisor/internal/prediction"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSinkTopic = "test-advisability"

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("event-advisor-test"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func newConsumer(broker string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		StartOffset: kafkago.FirstOffset,
		MaxWait:     500 * time.Millisecond,
	})
}

// TestAssessmentPublishedToKafka runs a real assessment through the service
// and reads the published message back from the sink topic.
func TestAssessmentPublishedToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}
	writer := kafka.NewWriter(cfg, logger)
	t.Cleanup(func() { _ = writer.Close() })

	rec := domain.WeatherRecord{
		Rainfall:        4,
		HighTemperature: 18,
		LowTemperature:  9,
		Humidity:        80,
		CloudCover:      7,
		AirPressure:     1005,
		WindDirection:   domain.SouthEast,
	}
	metrics := observability.NewMetricsForTesting()
	svc := assess.New(domain.NewDataset(rec, rec), advisability.BonusLiteral, writer, logger, metrics)

	event := domain.Event{Name: "Garden party", Outdoors: true, Hour: 15}
	want, err := svc.Assess(ctx, assess.Request{Event: event, Model: prediction.KindSimple, Days: 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.AssessmentsPublished), 0)

	consumer := newConsumer(broker)
	defer consumer.Close()

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, want.ID, string(msg.Key))
	assert.Equal(t, "simple", headers["model"])
	assert.Equal(t, want.AssessedAt.Format(time.RFC3339), headers["assessed_at"])

	var got domain.Assessment
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, event, got.Event)
	assert.Equal(t, 2, got.Days)
	assert.InDelta(t, want.Advisability, got.Advisability, 1e-9)
}
