package stats

import (
	"math"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layerplot/internal/types"
)

// ---------------------------------------------------------------------------
// OLS
// ---------------------------------------------------------------------------

func TestSmoothOLSRecoversLine(t *testing.T) {
	ds := frame(t, num("x", 4, 1, 3, 2), num("y", 9, 3, 7, 5), cat("tag", "d", "a", "c", "b"))
	out, err := Smooth(ds, SmoothOptions{X: "x", Y: "y"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, floats(t, out, "x"))
	assert.InDeltaSlice(t, []float64{3, 5, 7, 9}, floats(t, out, "y"), 1e-9)
	assert.Equal(t, []string{"a", "b", "c", "d"}, strs(t, out, "tag"))
}

func TestSmoothDropsMissingResponses(t *testing.T) {
	ds := frame(t, num("x", 1, 2, 3, 4), num("y", 2, math.NaN(), 6, 8))
	out, err := Smooth(ds, SmoothOptions{X: "x", Y: "y"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 4}, floats(t, out, "x"))
	assert.InDeltaSlice(t, []float64{2, 6, 8}, floats(t, out, "y"), 1e-9)
}

func TestSmoothWithTerms(t *testing.T) {
	xs := []float64{-2, -1, 0, 1, 2, 3}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 1 + 2*x + 3*x*x
	}
	ds := frame(t, num("x", xs...), num("y", ys...))
	out, err := Smooth(ds, SmoothOptions{
		X: "x",
		Y: "y",
		Terms: []Term{
			{Name: "linear", Expr: "x"},
			{Name: "square", Expr: "x^2"},
		},
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, ys, floats(t, out, "y"), 1e-6)
}

func TestSmoothMultiplePredictors(t *testing.T) {
	ds := frame(t,
		num("x", 1, 2, 3, 4, 5),
		num("z", 2, 1, 4, 3, 5),
		num("y", 1+2+4, 1+4+2, 1+6+8, 1+8+6, 1+10+10),
	)
	out, err := Smooth(ds, SmoothOptions{X: "x", Y: "y", Predictors: []string{"x", "z"}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{7, 7, 15, 15, 21}, floats(t, out, "y"), 1e-9)
}

func TestSmoothSingularDesign(t *testing.T) {
	ds := frame(t, num("x", 1, 2, 3), num("twice", 2, 4, 6), num("y", 1, 2, 3))
	_, err := Smooth(ds, SmoothOptions{X: "x", Y: "y", Predictors: []string{"x", "twice"}})
	requireInvalidRange(t, err)

	constant := frame(t, num("x", 1, 1, 1), num("y", 1, 2, 3))
	_, err = Smooth(constant, SmoothOptions{X: "x", Y: "y"})
	requireInvalidRange(t, err)
}

func TestSmoothTooFewRows(t *testing.T) {
	ds := frame(t, num("x", 1), num("y", 1))
	_, err := Smooth(ds, SmoothOptions{X: "x", Y: "y"})
	requireInvalidRange(t, err)
}

func TestSmoothGrouped(t *testing.T) {
	ds := frame(t,
		num("x", 1, 2, 3, 1, 2, 3),
		num("y", 1, 2, 3, 3, 2, 1),
		cat("g", "up", "up", "up", "down", "down", "down"),
	)
	out, err := Smooth(ds, SmoothOptions{X: "x", Y: "y", GroupBy: []string{"g"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"up", "up", "up", "down", "down", "down"}, strs(t, out, "g"))
	assert.InDeltaSlice(t, []float64{1, 2, 3, 3, 2, 1}, floats(t, out, "y"), 1e-9)
}

// ---------------------------------------------------------------------------
// LOESS
// ---------------------------------------------------------------------------

func TestSmoothLOESSFollowsLinearData(t *testing.T) {
	xs := []float64{}
	ys := []float64{}
	for i := 0; i < 20; i++ {
		xs = append(xs, float64(i))
		ys = append(ys, 0.5*float64(i)+1)
	}
	ds := frame(t, num("x", xs...), num("y", ys...))
	out, err := Smooth(ds, SmoothOptions{X: "x", Y: "y", Model: types.ModelLOESS, Span: 0.5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, ys, floats(t, out, "y"), 1e-6)
}

func TestSmoothLOESSWindowTooSmall(t *testing.T) {
	ds := frame(t, num("x", 1, 2, 3, 4), num("y", 1, 2, 3, 4))
	_, err := Smooth(ds, SmoothOptions{X: "x", Y: "y", Model: types.ModelLOESS, Span: 0.25, Degree: 2})
	requireInvalidRange(t, err)
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestSmoothValidation(t *testing.T) {
	ds := frame(t, num("x", 1, 2, 3), num("y", 1, 2, 3))

	_, err := Smooth(ds, SmoothOptions{X: "x", Y: "w"})
	requireMissing(t, err, "y", "w")

	_, err = Smooth(ds, SmoothOptions{X: "x", Y: "y", Predictors: []string{"q"}})
	requireMissing(t, err, "predictor", "q")

	_, err = Smooth(ds, SmoothOptions{X: "x", Y: "y", Terms: []Term{{Name: "t", Expr: "log(q)"}}})
	requireMissing(t, err, "term t", "q")

	tests := []struct {
		name string
		opts SmoothOptions
	}{
		{name: "unknown model", opts: SmoothOptions{X: "x", Y: "y", Model: "spline"}},
		{name: "loess with terms", opts: SmoothOptions{X: "x", Y: "y", Model: types.ModelLOESS, Terms: []Term{{Name: "t", Expr: "x"}}}},
		{name: "bad term", opts: SmoothOptions{X: "x", Y: "y", Terms: []Term{{Name: "t", Expr: "cbrt(x)"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Smooth(ds, tt.opts)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}
