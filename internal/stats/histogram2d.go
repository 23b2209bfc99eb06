package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/scale"

	"layerplot/internal/ports"
)

type Histogram2DOptions struct {
	X       string
	Y       string
	Bins    int
	GroupBy []string
}

// Histogram2D counts (X, Y) pairs on a square grid. Both axes are normalised
// to [0, 1], the grid cell size is 1/sqrt(Bins), and each point lands in the
// cell whose centre is nearest. Occupied cells are emitted in first-appearance
// order with their centres mapped back to data units and a count column.
func Histogram2D(ds ports.Dataset, opts Histogram2DOptions) (ports.Dataset, error) {
	if err := requireColumns(ds, "x", opts.X); err != nil {
		return nil, err
	}
	if err := requireColumns(ds, "y", opts.Y); err != nil {
		return nil, err
	}
	if err := requireColumns(ds, "group", opts.GroupBy...); err != nil {
		return nil, err
	}
	bins := opts.Bins
	if bins <= 0 {
		bins = DefaultBins * DefaultBins
	}
	cell := 1 / math.Sqrt(float64(bins))
	return grouped(ds, opts.GroupBy, func(part ports.Dataset) (ports.Dataset, error) {
		xs, err := part.Floats(opts.X)
		if err != nil {
			return nil, err
		}
		ys, err := part.Floats(opts.Y)
		if err != nil {
			return nil, err
		}
		return histogram2D(part, opts.X, opts.Y, xs, ys, cell)
	})
}

type gridCell struct {
	i, j int
}

func histogram2D(part ports.Dataset, xName string, yName string, xs []float64, ys []float64, cell float64) (ports.Dataset, error) {
	xScale := boundsScale(xs)
	yScale := boundsScale(ys)

	order := []gridCell{}
	counts := map[gridCell]float64{}
	for k := range xs {
		if math.IsNaN(xs[k]) || math.IsNaN(ys[k]) {
			continue
		}
		c := gridCell{
			i: int(math.Round(xScale.Map(xs[k]) / cell)),
			j: int(math.Round(yScale.Map(ys[k]) / cell)),
		}
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}

	outX := make([]float64, len(order))
	outY := make([]float64, len(order))
	outCount := make([]float64, len(order))
	for k, c := range order {
		outX[k] = xScale.Unmap(float64(c.i) * cell)
		outY[k] = yScale.Unmap(float64(c.j) * cell)
		outCount[k] = counts[c]
	}
	return part.New(numeric(xName, outX), numeric(yName, outY), numeric("count", outCount))
}

func boundsScale(values []float64) scale.Linear {
	lo, hi := mstats.Bounds(finite(values))
	if math.IsNaN(lo) {
		lo, hi = 0, 1
	}
	return scale.Linear{Min: lo, Max: hi}
}
