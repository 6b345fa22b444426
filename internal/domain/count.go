package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// presenceMarker is the source site's placeholder for "one or more
// individuals observed, exact count not recorded".
const presenceMarker = "X"

// ParseCount normalizes raw count-cell text into a non-negative integer.
// The presence marker maps to 1, a conservative lower bound. Anything else
// that is not a non-negative integer fails with [ErrInvalidCount].
//
// The marker rule is a one-off source-site convention; it lives here and
// nowhere else so a future convention change touches one place.
func ParseCount(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	if strings.EqualFold(text, presenceMarker) {
		return 1, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, raw)
	}
	return n, nil
}
