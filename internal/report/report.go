// Package report renders aggregate tables and trend series for downstream
// consumers: a text table for terminal reports, CSV for the document
// pipeline, and a smoothed series for the plotting layer.
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jszwec/csvutil"
	"github.com/rookmere/bird-trend-etl/internal/domain"
)

// aggregateColumns is the downstream column contract. Report generation
// depends on this exact order and naming.
var aggregateColumns = table.Row{"year", "spring", "breeding", "fall", "winter", "all"}

// WriteTable renders aggregate rows as a text table in contract column order.
func WriteTable(w io.Writer, rows []domain.SeasonYearAggregate) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(aggregateColumns)
	for _, row := range rows {
		t.AppendRow(table.Row{row.Year, row.Spring, row.Breeding, row.Fall, row.Winter, row.All})
	}
	t.Render()
}

// MarshalCSV serializes aggregate rows as CSV with the contract header. The
// csv struct tags on SeasonYearAggregate pin the column order.
func MarshalCSV(rows []domain.SeasonYearAggregate) ([]byte, error) {
	out, err := csvutil.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal aggregate csv: %w", err)
	}
	return out, nil
}

// WriteCSV writes the CSV form of aggregate rows to w.
func WriteCSV(w io.Writer, rows []domain.SeasonYearAggregate) error {
	out, err := MarshalCSV(rows)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(out))
	return err
}
