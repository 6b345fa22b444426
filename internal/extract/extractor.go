// Package extract parses region listing markup into sighting records.
package extract

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rookmere/bird-trend-etl/internal/domain"
)

// PageSchema describes the node paths the extractor expects on a region
// listing page. Selector drift on the source site surfaces as one clear
// ErrParse instead of a scatter of empty-string fallbacks.
type PageSchema struct {
	// Table locates the sightings table within the document.
	Table string
	// Row selects the "has detail" rows within the table.
	Row string
	// NameCell and NameAnchor locate the species link inside a row.
	NameCell   string
	NameAnchor string
	// CodeAttr is the anchor attribute carrying the stable species code.
	CodeAttr string
	// CountCell and DateCell locate the remaining row cells.
	CountCell string
	DateCell  string
	// DateLayout is the Go reference layout for the date-cell text.
	DateLayout string
}

// DefaultSchema matches the source site's current region listing layout.
func DefaultSchema() PageSchema {
	return PageSchema{
		Table:      "table.sightings-list",
		Row:        "tr.has-det",
		NameCell:   "td.species-name",
		NameAnchor: "a",
		CodeAttr:   "data-species-code",
		CountCell:  "td.how-many",
		DateCell:   "td.obs-date",
		DateLayout: "2-Jan-2006",
	}
}

// Extractor turns raw region-page markup into a flat sighting-record table.
// Pure transform: no network access, no retained state between calls.
type Extractor struct {
	schema PageSchema
	logger *slog.Logger
}

// New creates an Extractor for the given page schema.
func New(schema PageSchema, logger *slog.Logger) *Extractor {
	return &Extractor{schema: schema, logger: logger}
}

// Extract parses markup into sighting records. Rows without a species name
// are skipped (taxa outside the listing convention); rows whose date cannot
// be parsed are dropped (they fit no season bucket). A missing table or an
// unreadable count cell fails the whole extraction — partial data would
// silently skew the trend.
func (e *Extractor) Extract(markup string) ([]domain.SightingRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	table := doc.Find(e.schema.Table).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: no %q element in document", domain.ErrParse, e.schema.Table)
	}

	var (
		records      []domain.SightingRecord
		skippedNames int
		droppedDates int
		rowErr       error
	)

	table.Find(e.schema.Row).EachWithBreak(func(i int, row *goquery.Selection) bool {
		anchor := row.Find(e.schema.NameCell).First().Find(e.schema.NameAnchor).First()
		name := cleanText(anchor.Text())
		if name == "" {
			skippedNames++
			return true
		}

		countCell := row.Find(e.schema.CountCell).First()
		if countCell.Length() == 0 {
			rowErr = fmt.Errorf("%w: row %d has no %q cell", domain.ErrParse, i, e.schema.CountCell)
			return false
		}
		count, err := domain.ParseCount(countCell.Text())
		if err != nil {
			rowErr = fmt.Errorf("row %d (%s): %w", i, name, err)
			return false
		}

		dateText := cleanText(row.Find(e.schema.DateCell).First().Text())
		observed, err := time.Parse(e.schema.DateLayout, dateText)
		if err != nil {
			droppedDates++
			return true
		}

		records = append(records, domain.SightingRecord{
			SpeciesCode:  anchor.AttrOr(e.schema.CodeAttr, ""),
			SpeciesName:  name,
			Count:        count,
			ObservedDate: observed.UTC(),
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	e.logger.Debug("extraction complete",
		"records", len(records),
		"skipped_nameless", skippedNames,
		"dropped_dateless", droppedDates,
	)
	return records, nil
}

// cleanText trims whitespace and collapses interior runs left behind by
// markup indentation.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
