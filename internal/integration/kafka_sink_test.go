//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rookmere/bird-trend-etl/internal/adapter/kafka"
	"github.com/rookmere/bird-trend-etl/internal/config"
	"github.com/rookmere/bird-trend-etl/internal/domain"
	"github.com/rookmere/bird-trend-etl/internal/extract"
	"github.com/rookmere/bird-trend-etl/internal/observability"
	"github.com/rookmere/bird-trend-etl/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTrendTopic = "test-trend-points"

// trendMessage holds a deserialized message read from the trend topic.
type trendMessage struct {
	Points  []domain.TrendPoint
	Key     string
	Headers map[string]string
}

// readTrends reads a single message from the consumer and deserializes it.
func readTrends(ctx context.Context, t *testing.T, consumer *kafkago.Reader) trendMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from trend topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var points []domain.TrendPoint
	require.NoError(t, json.Unmarshal(msg.Value, &points), "unmarshal trend message")

	return trendMessage{
		Points:  points,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

func newTrendConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTrendTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// TestTrendSinkRoundTrip verifies that kafka.Writer publishes a trend series
// that a consumer can read back with key, payload, and headers intact.
func TestTrendSinkRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTrendTopic)

	cfg := &config.Config{
		KafkaBrokers:    []string{broker},
		KafkaTrendTopic: testTrendTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	points := []domain.TrendPoint{
		{Year: 2005, Season: domain.SeasonSpring, Count: 1},
		{Year: 2005, Season: domain.SeasonBreeding, Count: 0},
		{Year: 2005, Season: domain.SeasonFall, Count: 3},
		{Year: 2005, Season: domain.SeasonWinter, Count: 7},
		{Year: 2005, Season: domain.SeasonAll, Count: 11},
	}
	require.NoError(t, writer.PublishTrends(ctx, "US-NY-109", points))

	tm := readTrends(ctx, t, newTrendConsumer(t, broker))

	assert.Equal(t, "US-NY-109", tm.Key)
	assert.Equal(t, points, tm.Points)

	assert.Equal(t, "US-NY-109", tm.Headers["region"])
	assert.Equal(t, "5", tm.Headers["point_count"])
	_, err := time.Parse(time.RFC3339, tm.Headers["produced_at"])
	assert.NoError(t, err, "produced_at should be valid RFC3339")
}

// TestPipelinePublishesTrends runs a full analysis against a canned region
// page and verifies the resulting series lands on the trend topic.
func TestPipelinePublishesTrends(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTrendTopic)

	cfg := &config.Config{
		KafkaBrokers:    []string{broker},
		KafkaTrendTopic: testTrendTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	fetcher := staticFetcher(`<html><body><table class="sightings-list">
		<tr><th>Species</th><th>Count</th><th>Date</th></tr>
		<tr class="has-det">
			<td class="species-name"><a data-species-code="amerob">American Robin</a></td>
			<td class="how-many">X</td>
			<td class="obs-date">15-Mar-2005</td>
		</tr>
		<tr class="has-det">
			<td class="species-name"><a data-species-code="carwre">Carolina Wren</a></td>
			<td class="how-many">7</td>
			<td class="obs-date">10-Jan-2006</td>
		</tr>
	</table></body></html>`)

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(fetcher, extract.New(extract.DefaultSchema(), discardLogger()), writer, discardLogger(), metrics)

	analysis, err := p.Analyze(ctx, domain.RegionQuery{Region: "US-NY-109", AllYears: true}, 2005, 2006)
	require.NoError(t, err)
	require.Len(t, analysis.Trends, 10)

	tm := readTrends(ctx, t, newTrendConsumer(t, broker))

	assert.Equal(t, "US-NY-109", tm.Key)
	assert.Equal(t, analysis.Trends, tm.Points)
	assert.Equal(t, "10", tm.Headers["point_count"])

	// The wren observed in January 2006 belongs to winter 2005.
	var winter2005 int
	for _, pt := range tm.Points {
		if pt.Season == domain.SeasonWinter && pt.Year == 2005 {
			winter2005 = pt.Count
		}
	}
	assert.Equal(t, 7, winter2005)
}

// staticFetcher serves a fixed page for any query.
type staticFetcher string

func (f staticFetcher) FetchPage(_ context.Context, _ domain.RegionQuery) (string, error) {
	return string(f), nil
}
