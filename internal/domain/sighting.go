package domain

import (
	"context"
	"time"
)

// SightingRecord is one observed-species entry extracted from a region page.
// Records are created once per extraction run and never mutated. Duplicates
// are permitted and meaningful: they represent distinct checklist entries.
type SightingRecord struct {
	SpeciesCode  string    `json:"species_code"`
	SpeciesName  string    `json:"species_name"`
	Count        int       `json:"count"`
	ObservedDate time.Time `json:"observed_date"`
}

// RegionQuery identifies a sub-national region on the source site plus the
// listing query parameters. The core passes these through untouched.
type RegionQuery struct {
	// Region is the opaque site region code, e.g. a county or state code.
	Region string

	// AllYears selects the full historical listing rather than the current
	// year only.
	AllYears bool

	// Ranking selects the listing sort order. The trend pipeline uses
	// "mrec" (most recent checklist first), the site default.
	Ranking string
}

// PageFetcher retrieves the raw markup of a region listing page. The core
// depends only on this interface, not on any particular transport.
// Implementations report failures wrapped in [ErrFetch].
type PageFetcher interface {
	FetchPage(ctx context.Context, q RegionQuery) (string, error)
}

// Analysis is the result envelope for one region trend analysis.
type Analysis struct {
	Region      string                `json:"region"`
	StartYear   int                   `json:"start_year"`
	EndYear     int                   `json:"end_year"`
	RecordCount int                   `json:"record_count"`
	Aggregates  []SeasonYearAggregate `json:"aggregates"`
	Trends      []TrendPoint          `json:"trends"`
	GeneratedAt time.Time             `json:"generated_at"`
}
