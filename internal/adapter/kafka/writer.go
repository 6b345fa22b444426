// Package kafka publishes completed trend series to a Kafka topic for
// downstream dashboards. The sink is optional and feature-flagged; the
// analysis pipeline works identically without it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/rookmere/bird-trend-etl/internal/config"
	"github.com/rookmere/bird-trend-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces trend-series messages to the configured topic.
// It implements pipeline.TrendSink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured trend topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTrendTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishTrends serializes one region's trend points into a single message
// keyed by region code and publishes it.
func (w *Writer) PublishTrends(ctx context.Context, region string, points []domain.TrendPoint) error {
	if len(points) == 0 {
		return nil
	}
	msg, err := serializeToMessage(region, points)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a trend series into a Kafka message.
func serializeToMessage(region string, points []domain.TrendPoint) (kafkago.Message, error) {
	data, err := json.Marshal(points)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize trend series: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(region),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "region", Value: []byte(region)},
			{Key: "point_count", Value: []byte(strconv.Itoa(len(points)))},
			{Key: "produced_at", Value: []byte(domain.Now().Format(time.RFC3339))},
		},
	}, nil
}
