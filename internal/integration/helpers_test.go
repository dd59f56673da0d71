//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"

	"github.com/couchcryptid/propa-engine/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node KRaft broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("propa-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// testScenarios returns a spread of valid link requests: the reference
// link plus variations on elevation, band, polarization and unavailability.
func testScenarios() []domain.Scenario {
	ref := domain.ReferenceScenario()

	lowEl := ref
	lowEl.ID = "low-elevation"
	lowEl.Station.ElevationDeg = 20

	kaBand := ref
	kaBand.ID = "ka-band"
	kaBand.Link.Freq1GHz = 30
	kaBand.Link.Freq2GHz = 40

	vertical := ref
	vertical.ID = "vertical-1pct"
	vertical.Link.PolarizationDeg = 90
	vertical.Link.UnavailabilityPct = 1

	tropical := ref
	tropical.ID = "tropical"
	tropical.Station = domain.Station{Lat: 1.35, Lon: 103.82, AltitudeM: 15, ElevationDeg: 45}

	return []domain.Scenario{ref, lowEl, kaBand, vertical, tropical}
}
