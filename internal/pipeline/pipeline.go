// Package pipeline orchestrates a region trend analysis: fetch the region
// page, extract the sighting table, aggregate season-year counts, and build
// the trend series for downstream consumers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rookmere/bird-trend-etl/internal/domain"
	"github.com/rookmere/bird-trend-etl/internal/observability"
)

// RecordExtractor parses region-page markup into sighting records.
type RecordExtractor interface {
	Extract(markup string) ([]domain.SightingRecord, error)
}

// TrendSink receives the trend points of a completed analysis. Publishing
// is best-effort: a sink failure does not fail the analysis.
type TrendSink interface {
	PublishTrends(ctx context.Context, region string, points []domain.TrendPoint) error
}

// Pipeline wires fetcher, extractor, and sink into one analysis flow.
type Pipeline struct {
	fetcher   domain.PageFetcher
	extractor RecordExtractor
	sink      TrendSink // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline with the given stages and observability. Pass a
// nil sink to disable trend publishing.
func New(f domain.PageFetcher, e RecordExtractor, s TrendSink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:   f,
		extractor: e,
		sink:      s,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the pipeline has completed at least one
// analysis, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed any analysis yet")
	}
	return nil
}

// Analyze runs one full analysis for a region over the inclusive year range
// [startYear, endYear]. There is no partial-success mode: either the full
// record table is extracted and aggregated, or the analysis fails.
func (p *Pipeline) Analyze(ctx context.Context, q domain.RegionQuery, startYear, endYear int) (*domain.Analysis, error) {
	start := time.Now()

	markup, err := p.fetcher.FetchPage(ctx, q)
	if err != nil {
		p.metrics.FetchErrors.Inc()
		return nil, err
	}
	p.metrics.PagesFetched.Inc()

	records, err := p.extractor.Extract(markup)
	if err != nil {
		p.metrics.ParseErrors.Inc()
		return nil, fmt.Errorf("extract region %s: %w", q.Region, err)
	}
	p.metrics.RecordsExtracted.Add(float64(len(records)))

	aggregates, err := domain.AggregateYears(records, startYear, endYear)
	if err != nil {
		return nil, err
	}
	trends := domain.BuildTrendSeries(aggregates)

	analysis := &domain.Analysis{
		Region:      q.Region,
		StartYear:   startYear,
		EndYear:     endYear,
		RecordCount: len(records),
		Aggregates:  aggregates,
		Trends:      trends,
		GeneratedAt: domain.Now(),
	}

	p.publish(ctx, q.Region, trends)

	p.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	p.metrics.AnalysesCompleted.Inc()
	p.ready.Store(true)
	p.metrics.PipelineReady.Set(1)

	p.logger.Info("analysis complete",
		"region", q.Region,
		"start_year", startYear,
		"end_year", endYear,
		"records", len(records),
		"trend_points", len(trends),
	)
	return analysis, nil
}

// publish sends trend points to the sink when one is configured. Sink
// failures are logged and counted, never propagated: the analysis result is
// already complete and valid.
func (p *Pipeline) publish(ctx context.Context, region string, trends []domain.TrendPoint) {
	if p.sink == nil {
		return
	}
	if err := p.sink.PublishTrends(ctx, region, trends); err != nil {
		p.logger.Warn("trend sink publish failed", "region", region, "error", err)
		p.metrics.SinkErrors.Inc()
		return
	}
	p.metrics.TrendPointsPublished.Add(float64(len(trends)))
}
