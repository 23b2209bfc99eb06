package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"layerplot/internal/ports"
)

const DefaultBins = 10

type HistogramOptions struct {
	X       string
	Bins    int
	GroupBy []string
}

// Histogram counts X into Bins equal-width bins spanning [min, max] of X.
// Bins are right-open except the last, which includes max. The output has
// one row per bin with columns left, right, middle, width and count, where
// width is the distance from middle to either edge.
func Histogram(ds ports.Dataset, opts HistogramOptions) (ports.Dataset, error) {
	if err := requireColumns(ds, "x", opts.X); err != nil {
		return nil, err
	}
	if err := requireColumns(ds, "group", opts.GroupBy...); err != nil {
		return nil, err
	}
	bins := opts.Bins
	if bins <= 0 {
		bins = DefaultBins
	}
	return grouped(ds, opts.GroupBy, func(part ports.Dataset) (ports.Dataset, error) {
		xs, err := part.Floats(opts.X)
		if err != nil {
			return nil, err
		}
		return histogram(part, finite(xs), bins)
	})
}

func histogram(part ports.Dataset, xs []float64, bins int) (ports.Dataset, error) {
	if len(xs) == 0 {
		return part.New(
			numeric("left", []float64{}),
			numeric("right", []float64{}),
			numeric("middle", []float64{}),
			numeric("width", []float64{}),
			numeric("count", []float64{}),
		)
	}
	lo, hi := mstats.Bounds(xs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := vec.Linspace(lo, hi, bins+1)
	step := (hi - lo) / float64(bins)

	counts := make([]float64, bins)
	for _, x := range xs {
		i := int(math.Floor((x - lo) / step))
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		counts[i]++
	}

	left := make([]float64, bins)
	right := make([]float64, bins)
	middle := make([]float64, bins)
	width := make([]float64, bins)
	for i := 0; i < bins; i++ {
		left[i] = edges[i]
		right[i] = edges[i+1]
		middle[i] = (edges[i] + edges[i+1]) / 2
		width[i] = (edges[i+1] - edges[i]) / 2
	}
	return part.New(
		numeric("left", left),
		numeric("right", right),
		numeric("middle", middle),
		numeric("width", width),
		numeric("count", counts),
	)
}
