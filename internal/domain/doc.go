// Package domain models bird-sighting records scraped from a public
// biodiversity reporting site and the seasonal bucketing rules used for
// multi-year trend analysis.
//
// # Data Source
//
// Sightings come from per-region species listing pages. Each page holds one
// HTML table where every reportable taxon occupies a row tagged with the
// "has-det" class. A row carries the species display name and a stable
// species code in its name-cell anchor, a count cell, and an
// observation-date cell. Rows without a name cell are hybrid or "spuh"
// entries that do not follow the listing convention and are skipped.
//
// # Count Convention
//
// The source site records "one or more individuals seen, exact number
// unknown" as a literal "X" in the count column. The normalizer maps this
// marker to 1, a conservative lower bound: an undercounted trend is
// acceptable, a fabricated count is not. Any other non-numeric count text
// fails the whole extraction (see [ParseCount]) because silently skipping
// rows would bias the trend data downward without anyone noticing.
//
// # Date Convention
//
//	DD-Mon-YYYY, e.g. "15-Mar-2005".
//	Rows whose date cell cannot be parsed are dropped during extraction;
//	a record without a date cannot be placed in any season bucket.
//
// # Migration Seasons
//
// Calendar dates map to migration season-years through fixed month windows.
// All ranges are half-open, [start, end):
//
//	spring    Mar 1 – Jun 1
//	breeding  Jun 1 – Aug 1
//	fall      Aug 1 – Dec 1
//	winter    Dec 1 – Mar 1 of the following year
//	all       Mar 1 – Mar 1 of the following year
//
// A season-year is labeled with the year its window starts in: winter-1999
// spans December 1999 through the end of February 2000. The "all" window is
// a full-year rollup series that intentionally overlaps the four named
// seasons; a record counts once under its named season and once again under
// "all". Label years before 1970 are rejected.
package domain
