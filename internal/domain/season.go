package domain

import (
	"fmt"
	"time"
)

// Season is one of the five migration season buckets. The set is closed:
// anything outside the five constants fails classification with
// [ErrInvalidArgument].
type Season string

const (
	SeasonSpring   Season = "spring"
	SeasonBreeding Season = "breeding"
	SeasonFall     Season = "fall"
	SeasonWinter   Season = "winter"
	SeasonAll      Season = "all"
)

// Seasons lists every season in canonical order. Trend series and report
// columns enumerate seasons in exactly this order.
var Seasons = []Season{SeasonSpring, SeasonBreeding, SeasonFall, SeasonWinter, SeasonAll}

// MinYear is the earliest label year the classifier accepts.
const MinYear = 1970

// seasonWindow defines a season's month range. endMonth is exclusive.
// crossesYear marks windows that run into the following calendar year.
type seasonWindow struct {
	startMonth  time.Month
	endMonth    time.Month
	crossesYear bool
}

var seasonWindows = map[Season]seasonWindow{
	SeasonSpring:   {startMonth: time.March, endMonth: time.June},
	SeasonBreeding: {startMonth: time.June, endMonth: time.August},
	SeasonFall:     {startMonth: time.August, endMonth: time.December},
	SeasonWinter:   {startMonth: time.December, endMonth: time.March, crossesYear: true},
	SeasonAll:      {startMonth: time.March, endMonth: time.March, crossesYear: true},
}

// Valid reports whether s is one of the five recognized seasons.
func (s Season) Valid() bool {
	_, ok := seasonWindows[s]
	return ok
}

// SeasonRange returns the half-open date range [start, end) of the given
// season anchored to the label year. For winter and all the end date falls
// in year+1. The exclusive end bound prevents a record on a boundary from
// counting in two adjacent season-years.
func SeasonRange(season Season, year int) (start, end time.Time, err error) {
	w, ok := seasonWindows[season]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown season %q", ErrInvalidArgument, string(season))
	}
	if year < MinYear {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year %d precedes %d", ErrInvalidArgument, year, MinYear)
	}

	endYear := year
	if w.crossesYear {
		endYear = year + 1
	}

	start = time.Date(year, w.startMonth, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(endYear, w.endMonth, 1, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

// InSeason reports whether t falls inside the season-year bucket.
func InSeason(t time.Time, season Season, year int) (bool, error) {
	start, end, err := SeasonRange(season, year)
	if err != nil {
		return false, err
	}
	return !t.Before(start) && t.Before(end), nil
}
