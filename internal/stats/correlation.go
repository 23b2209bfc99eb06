package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"

	"layerplot/internal/ports"
	"layerplot/internal/types"
)

// Correlation computes the Pearson correlation of every pair of numeric
// columns, in long format: one row per (row, column) pair, row-major, with
// columns row, column and correlation.
func Correlation(ds ports.Dataset) (ports.Dataset, error) {
	names := NumericColumns(ds)
	series := make([][]float64, len(names))
	for i, name := range names {
		values, err := ds.Floats(name)
		if err != nil {
			return nil, err
		}
		series[i] = values
	}

	n := len(names)
	rows := make([]string, 0, n*n)
	columns := make([]string, 0, n*n)
	coefficients := make([]float64, 0, n*n)
	for i := range names {
		for j := range names {
			rows = append(rows, names[i])
			columns = append(columns, names[j])
			coefficients = append(coefficients, pearson(series[i], series[j]))
		}
	}
	return ds.New(
		ports.Column{Name: "row", Type: types.FieldCategorical, Strings: rows},
		ports.Column{Name: "column", Type: types.FieldCategorical, Strings: columns},
		numeric("correlation", coefficients),
	)
}

func NumericColumns(ds ports.Dataset) []string {
	names := []string{}
	for _, name := range ds.Names() {
		kind, err := ds.Type(name)
		if err == nil && kind == types.FieldNumeric {
			names = append(names, name)
		}
	}
	return names
}

// pearson uses the rows where both values are present.
func pearson(a []float64, b []float64) float64 {
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	meanX, meanY := mstats.Mean(xs), mstats.Mean(ys)
	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
