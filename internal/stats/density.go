package stats

import (
	"fmt"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"layerplot/internal/ports"
	"layerplot/internal/types"
)

const DefaultDensityPoints = 200

type DensityOptions struct {
	X         string
	Bandwidth float64
	Points    int
	GroupBy   []string
}

// Density estimates the distribution of X with a Gaussian kernel. A zero
// bandwidth selects Silverman's rule of thumb. The estimate is evaluated on
// Points evenly spaced values covering [min - r/4, max + r/4], r = max - min.
func Density(ds ports.Dataset, opts DensityOptions) (ports.Dataset, error) {
	if err := requireColumns(ds, "x", opts.X); err != nil {
		return nil, err
	}
	if err := requireColumns(ds, "group", opts.GroupBy...); err != nil {
		return nil, err
	}
	if opts.Bandwidth < 0 {
		return nil, types.InvalidRangeError{Op: "density", Reason: fmt.Sprintf("negative bandwidth %g", opts.Bandwidth)}
	}
	points := opts.Points
	if points <= 1 {
		points = DefaultDensityPoints
	}
	return grouped(ds, opts.GroupBy, func(part ports.Dataset) (ports.Dataset, error) {
		xs, err := part.Floats(opts.X)
		if err != nil {
			return nil, err
		}
		grid, density, err := estimateDensity(finite(xs), opts.Bandwidth, points)
		if err != nil {
			return nil, err
		}
		return part.New(numeric(opts.X, grid), numeric("density", density))
	})
}

func estimateDensity(xs []float64, bandwidth float64, points int) ([]float64, []float64, error) {
	if len(xs) == 0 {
		return nil, nil, types.InvalidRangeError{Op: "density", Reason: "no values"}
	}
	lo, hi := mstats.Bounds(xs)
	if lo >= hi {
		return nil, nil, types.InvalidRangeError{Op: "density", Reason: fmt.Sprintf("min %g >= max %g", lo, hi)}
	}
	sample := mstats.Sample{Xs: xs}
	if bandwidth == 0 {
		bandwidth = mstats.BandwidthSilverman(sample)
	}
	kde := mstats.KDE{
		Sample:    sample,
		Kernel:    mstats.GaussianKernel,
		Bandwidth: bandwidth,
	}
	pad := (hi - lo) / 4
	grid := vec.Linspace(lo-pad, hi+pad, points)
	return grid, vec.Map(kde.PDF, grid), nil
}
