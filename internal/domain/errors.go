package domain

import "errors"

// Sentinel errors for the extraction and classification pipeline. Callers
// match with errors.Is; wrap sites add context with fmt.Errorf("...: %w").
var (
	// ErrFetch marks a failure to retrieve a region page from the source
	// site. The core never retries; the caller decides.
	ErrFetch = errors.New("fetch region page")

	// ErrParse marks markup that does not match the expected listing-table
	// structure. Retrying cannot help, the page layout has changed.
	ErrParse = errors.New("unexpected page structure")

	// ErrInvalidCount marks count-cell text that is neither numeric nor the
	// presence marker. It fails the whole extraction rather than skipping
	// the row, to avoid silent undercounting.
	ErrInvalidCount = errors.New("invalid count")

	// ErrInvalidArgument marks a bad season name or out-of-range year
	// passed to the classifier. Caller programming error.
	ErrInvalidArgument = errors.New("invalid argument")
)
