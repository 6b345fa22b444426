// Command analyze runs a one-shot region trend analysis and prints the
// aggregate table. The page can come from the live site or from a saved
// HTML file, which is useful for reproducing a report offline.
//
// Usage:
//
//	go run ./cmd/analyze -region US-NY-109 -start 2000 -end 2010
//	go run ./cmd/analyze -input testdata/region.html -start 2000 -end 2010 -format csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rookmere/bird-trend-etl/internal/adapter/ebird"
	"github.com/rookmere/bird-trend-etl/internal/domain"
	"github.com/rookmere/bird-trend-etl/internal/extract"
	"github.com/rookmere/bird-trend-etl/internal/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(1)
	}
}

func run() error {
	region := flag.String("region", "", "region code on the source site, e.g. US-NY-109")
	input := flag.String("input", "", "read markup from a saved HTML file instead of fetching")
	baseURL := flag.String("base-url", "https://ebird.org", "source site base URL")
	startYear := flag.Int("start", 0, "first label year (inclusive)")
	endYear := flag.Int("end", 0, "last label year (inclusive)")
	format := flag.String("format", "table", "output format: table or csv")
	smooth := flag.Int("smooth", 0, "odd moving-average window for the smoothed series (0 disables)")
	timeout := flag.Duration("timeout", 30*time.Second, "fetch timeout")
	flag.Parse()

	if *startYear == 0 || *endYear == 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -start, -end")
	}
	if *region == "" && *input == "" {
		flag.Usage()
		return fmt.Errorf("one of -region or -input is required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	markup, err := loadMarkup(*region, *input, *baseURL, *timeout, logger)
	if err != nil {
		return err
	}

	records, err := extract.New(extract.DefaultSchema(), logger).Extract(markup)
	if err != nil {
		return err
	}
	logger.Info("extracted records", "count", len(records))

	aggregates, err := domain.AggregateYears(records, *startYear, *endYear)
	if err != nil {
		return err
	}

	switch *format {
	case "table":
		report.WriteTable(os.Stdout, aggregates)
	case "csv":
		if err := report.WriteCSV(os.Stdout, aggregates); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	if *smooth > 0 {
		smoothed, err := report.SmoothTrend(domain.BuildTrendSeries(aggregates), *smooth)
		if err != nil {
			return err
		}
		fmt.Println()
		for _, p := range smoothed {
			fmt.Printf("%d,%s,%.2f\n", p.Year, p.Season, p.Value)
		}
	}

	return nil
}

func loadMarkup(region, input, baseURL string, timeout time.Duration, logger *slog.Logger) (string, error) {
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}

	client := ebird.NewClient(baseURL, timeout, logger)
	return client.FetchPage(context.Background(), domain.RegionQuery{
		Region:   region,
		AllYears: true,
	})
}
