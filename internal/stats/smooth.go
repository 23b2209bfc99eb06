package stats

import (
	"fmt"
	"math"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/aclements/go-moremath/fit"

	"layerplot/internal/ports"
	"layerplot/internal/types"
)

const (
	DefaultSpan   = 0.75
	DefaultDegree = 1
)

type SmoothOptions struct {
	X          string
	Y          string
	Predictors []string
	Terms      []Term
	Model      types.SmoothModel
	Span       float64
	Degree     int
	GroupBy    []string
}

// Smooth fits Y against the predictors (or the design-matrix terms, when
// given) and replaces Y with the fitted values. Rows with a missing Y are
// dropped before fitting; the remaining rows are returned sorted by X within
// each group.
func Smooth(ds ports.Dataset, opts SmoothOptions) (ports.Dataset, error) {
	if err := requireColumns(ds, "x", opts.X); err != nil {
		return nil, err
	}
	if err := requireColumns(ds, "y", opts.Y); err != nil {
		return nil, err
	}
	if len(opts.Predictors) == 0 {
		opts.Predictors = []string{opts.X}
	}
	if err := requireColumns(ds, "predictor", opts.Predictors...); err != nil {
		return nil, err
	}
	if err := requireColumns(ds, "group", opts.GroupBy...); err != nil {
		return nil, err
	}

	terms := make([][]termFactor, 0, len(opts.Terms))
	for _, term := range opts.Terms {
		factors, err := parseTerm(term.Expr)
		if err != nil {
			return nil, err
		}
		if err := requireColumns(ds, "term "+term.Name, termColumns(factors)...); err != nil {
			return nil, err
		}
		terms = append(terms, factors)
	}

	if opts.Model == "" {
		opts.Model = types.ModelOLS
	}
	switch opts.Model {
	case types.ModelOLS:
	case types.ModelLOESS:
		if len(terms) > 0 || len(opts.Predictors) != 1 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("loess smoothing takes exactly one predictor and no terms")
		}
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown smoothing model %q", opts.Model))
	}

	return grouped(ds, opts.GroupBy, func(part ports.Dataset) (ports.Dataset, error) {
		return smoothPart(part, opts, terms)
	})
}

func smoothPart(part ports.Dataset, opts SmoothOptions, terms [][]termFactor) (ports.Dataset, error) {
	ys, err := part.Floats(opts.Y)
	if err != nil {
		return nil, err
	}
	rows := make([]int, 0, len(ys))
	for i, y := range ys {
		if !math.IsNaN(y) {
			rows = append(rows, i)
		}
	}
	kept := part.Subset(rows)
	if kept.Len() == 0 {
		return kept, nil
	}
	keptY, err := kept.Floats(opts.Y)
	if err != nil {
		return nil, err
	}

	var predicted []float64
	if opts.Model == types.ModelLOESS {
		xs, err := kept.Floats(opts.Predictors[0])
		if err != nil {
			return nil, err
		}
		predicted, err = fitLOESS(xs, keptY, opts.Degree, opts.Span)
		if err != nil {
			return nil, err
		}
	} else {
		design, err := designMatrix(kept, opts.Predictors, terms)
		if err != nil {
			return nil, err
		}
		predicted, err = fitOLS(design, keptY)
		if err != nil {
			return nil, err
		}
	}

	out, err := kept.WithFloats(opts.Y, predicted)
	if err != nil {
		return nil, err
	}
	return out.SortBy(opts.X)
}

// designMatrix returns the design columns, intercept first.
func designMatrix(ds ports.Dataset, predictors []string, terms [][]termFactor) ([][]float64, error) {
	intercept := make([]float64, ds.Len())
	for i := range intercept {
		intercept[i] = 1
	}
	design := [][]float64{intercept}
	if len(terms) > 0 {
		for _, factors := range terms {
			column, err := evaluateTerm(ds, factors)
			if err != nil {
				return nil, err
			}
			design = append(design, column)
		}
		return design, nil
	}
	for _, name := range predictors {
		column, err := ds.Floats(name)
		if err != nil {
			return nil, err
		}
		design = append(design, column)
	}
	return design, nil
}

func fitOLS(design [][]float64, ys []float64) ([]float64, error) {
	fitRows := make([]int, 0, len(ys))
	for i := range ys {
		usable := true
		for _, column := range design {
			if math.IsNaN(column[i]) || math.IsInf(column[i], 0) {
				usable = false
				break
			}
		}
		if usable {
			fitRows = append(fitRows, i)
		}
	}
	if len(fitRows) < len(design) {
		return nil, types.InvalidRangeError{
			Op:     "smooth",
			Reason: fmt.Sprintf("%d usable rows for %d parameters", len(fitRows), len(design)),
		}
	}

	fitColumns := make([][]float64, len(design))
	for j, column := range design {
		fitColumns[j] = make([]float64, len(fitRows))
		for k, row := range fitRows {
			fitColumns[j][k] = column[row]
		}
	}
	if rankDeficient(fitColumns) {
		return nil, types.InvalidRangeError{Op: "smooth", Reason: "singular design matrix"}
	}

	positions := make([]float64, len(fitRows))
	fitY := make([]float64, len(fitRows))
	for k, row := range fitRows {
		positions[k] = float64(k)
		fitY[k] = ys[row]
	}
	termFns := make([]func(xs, termOut []float64), len(fitColumns))
	for j := range fitColumns {
		column := fitColumns[j]
		termFns[j] = func(xs, termOut []float64) {
			for i, x := range xs {
				termOut[i] = column[int(x)]
			}
		}
	}
	params := fit.LinearLeastSquares(positions, fitY, nil, termFns...)
	for _, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, types.InvalidRangeError{Op: "smooth", Reason: "least squares did not converge"}
		}
	}

	predicted := make([]float64, len(ys))
	for i := range predicted {
		for j, column := range design {
			predicted[i] += params[j] * column[i]
		}
	}
	return predicted, nil
}

// rankDeficient reports whether the columns are linearly dependent, using
// modified Gram-Schmidt with a relative tolerance.
func rankDeficient(columns [][]float64) bool {
	basis := make([][]float64, 0, len(columns))
	for _, column := range columns {
		v := append([]float64(nil), column...)
		norm := math.Sqrt(dot(v, v))
		if norm == 0 {
			return true
		}
		for _, q := range basis {
			proj := dot(v, q)
			for i := range v {
				v[i] -= proj * q[i]
			}
		}
		residual := math.Sqrt(dot(v, v))
		if residual <= 1e-10*norm {
			return true
		}
		for i := range v {
			v[i] /= residual
		}
		basis = append(basis, v)
	}
	return false
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func fitLOESS(xs []float64, ys []float64, degree int, span float64) ([]float64, error) {
	if span <= 0 {
		span = DefaultSpan
	}
	if degree <= 0 {
		degree = DefaultDegree
	}
	fitX := make([]float64, 0, len(xs))
	fitY := make([]float64, 0, len(xs))
	for i, x := range xs {
		if !math.IsNaN(x) {
			fitX = append(fitX, x)
			fitY = append(fitY, ys[i])
		}
	}
	window := int(math.Ceil(span * float64(len(fitX))))
	if window > len(fitX) {
		window = len(fitX)
	}
	if window < degree+1 {
		return nil, types.InvalidRangeError{
			Op:     "smooth",
			Reason: fmt.Sprintf("loess window of %d rows cannot fit degree %d", window, degree),
		}
	}
	predict := fit.LOESS(fitX, fitY, degree, span)
	out := make([]float64, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) {
			out[i] = math.NaN()
			continue
		}
		out[i] = predict(x)
	}
	return out, nil
}
