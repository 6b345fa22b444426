package report

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/rookmere/bird-trend-etl/internal/domain"
)

// SmoothedPoint is one smoothed trend observation. Value is fractional
// because smoothing averages integer counts.
type SmoothedPoint struct {
	Year   int           `json:"year"`
	Season domain.Season `json:"season"`
	Value  float64       `json:"value"`
}

// SmoothTrend applies a centered moving average of the given odd window to
// each season's series independently, preserving input order. Window 1
// returns the raw counts. Series shorter than the window shrink the window
// at the edges rather than dropping points, so output length always equals
// input length.
func SmoothTrend(points []domain.TrendPoint, window int) ([]SmoothedPoint, error) {
	if window < 1 || window%2 == 0 {
		return nil, fmt.Errorf("%w: smoothing window must be a positive odd number, got %d", domain.ErrInvalidArgument, window)
	}

	bySeason := make(map[domain.Season][]int) // indexes into points, in order
	for i, p := range points {
		bySeason[p.Season] = append(bySeason[p.Season], i)
	}

	out := make([]SmoothedPoint, len(points))
	half := window / 2
	for _, idxs := range bySeason {
		series := make([]float64, len(idxs))
		for j, i := range idxs {
			series[j] = float64(points[i].Count)
		}
		for j, i := range idxs {
			lo := max(0, j-half)
			hi := min(len(series), j+half+1)
			mean, err := stats.Mean(series[lo:hi])
			if err != nil {
				return nil, fmt.Errorf("smooth %s series: %w", points[i].Season, err)
			}
			out[i] = SmoothedPoint{Year: points[i].Year, Season: points[i].Season, Value: mean}
		}
	}
	return out, nil
}
