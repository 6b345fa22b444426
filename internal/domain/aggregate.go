package domain

import "fmt"

// SeasonYearAggregate is one wide row of the trend table: total sighting
// counts for each season of one labeled year. Field order matches the
// downstream report contract: year, spring, breeding, fall, winter, all.
//
// All need not equal Spring+Breeding+Fall+Winter. The all window overlaps
// the named seasons on purpose: it is a full-year check series, not a
// sum-of-others column.
type SeasonYearAggregate struct {
	Year     int `json:"year" csv:"year"`
	Spring   int `json:"spring" csv:"spring"`
	Breeding int `json:"breeding" csv:"breeding"`
	Fall     int `json:"fall" csv:"fall"`
	Winter   int `json:"winter" csv:"winter"`
	All      int `json:"all" csv:"all"`
}

// Total returns the aggregate's count for one season.
func (a SeasonYearAggregate) Total(s Season) int {
	switch s {
	case SeasonSpring:
		return a.Spring
	case SeasonBreeding:
		return a.Breeding
	case SeasonFall:
		return a.Fall
	case SeasonWinter:
		return a.Winter
	case SeasonAll:
		return a.All
	}
	return 0
}

// TrendPoint is one (year, season, total count) observation, the long-form
// shape consumed by the smoothing/plotting layer.
type TrendPoint struct {
	Year   int    `json:"year"`
	Season Season `json:"season"`
	Count  int    `json:"count"`
}

// SeasonTotal sums Count over every record whose date falls inside the
// season-year bucket. Records outside the bucket are ignored; the record
// table itself is never modified.
func SeasonTotal(records []SightingRecord, season Season, year int) (int, error) {
	start, end, err := SeasonRange(season, year)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, r := range records {
		if !r.ObservedDate.Before(start) && r.ObservedDate.Before(end) {
			total += r.Count
		}
	}
	return total, nil
}

// AggregateYears produces one SeasonYearAggregate per year in the inclusive
// range [startYear, endYear]. Each year's row is independent; the function
// is pure and running it twice over the same table yields identical output.
// Classifier errors (bad year) propagate unchanged.
func AggregateYears(records []SightingRecord, startYear, endYear int) ([]SeasonYearAggregate, error) {
	if startYear > endYear {
		return nil, fmt.Errorf("%w: start year %d after end year %d", ErrInvalidArgument, startYear, endYear)
	}

	rows := make([]SeasonYearAggregate, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		row := SeasonYearAggregate{Year: year}
		for _, season := range Seasons {
			total, err := SeasonTotal(records, season, year)
			if err != nil {
				return nil, err
			}
			switch season {
			case SeasonSpring:
				row.Spring = total
			case SeasonBreeding:
				row.Breeding = total
			case SeasonFall:
				row.Fall = total
			case SeasonWinter:
				row.Winter = total
			case SeasonAll:
				row.All = total
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BuildTrendSeries flattens wide aggregate rows into long-form trend points,
// preserving row order and enumerating seasons in canonical order. Pure
// reshape, no aggregation of its own.
func BuildTrendSeries(rows []SeasonYearAggregate) []TrendPoint {
	points := make([]TrendPoint, 0, len(rows)*len(Seasons))
	for _, row := range rows {
		for _, season := range Seasons {
			points = append(points, TrendPoint{
				Year:   row.Year,
				Season: season,
				Count:  row.Total(season),
			})
		}
	}
	return points
}
