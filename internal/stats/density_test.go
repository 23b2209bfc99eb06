package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDensityGridCoversPaddedRange(t *testing.T) {
	ds := frame(t, num("v", 0, 1, 2, 3, 4))
	out, err := Density(ds, DensityOptions{X: "v", Points: 21})
	require.NoError(t, err)
	assert.Equal(t, []string{"v", "density"}, out.Names())

	grid := floats(t, out, "v")
	require.Len(t, grid, 21)
	assert.InDelta(t, -1, grid[0], 1e-9)
	assert.InDelta(t, 5, grid[20], 1e-9)
	for _, d := range floats(t, out, "density") {
		assert.GreaterOrEqual(t, d, 0.0)
	}
}

func TestDensityIntegratesToAboutOne(t *testing.T) {
	ds := frame(t, num("v", 1, 2, 2, 3, 3, 3, 4, 4, 5))
	out, err := Density(ds, DensityOptions{X: "v", Bandwidth: 0.3, Points: 400})
	require.NoError(t, err)
	grid := floats(t, out, "v")
	density := floats(t, out, "density")
	step := grid[1] - grid[0]
	assert.InDelta(t, 1, sum(density)*step, 0.05)
}

func TestDensityDefaults(t *testing.T) {
	ds := frame(t, num("v", 1, 2, 3))
	out, err := Density(ds, DensityOptions{X: "v"})
	require.NoError(t, err)
	assert.Equal(t, DefaultDensityPoints, out.Len())
}

func TestDensityInvalidRange(t *testing.T) {
	tests := []struct {
		name string
		data []float64
	}{
		{name: "constant values", data: []float64{2, 2, 2}},
		{name: "no values", data: []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := frame(t, num("v", tt.data...))
			_, err := Density(ds, DensityOptions{X: "v"})
			requireInvalidRange(t, err)
		})
	}

	ds := frame(t, num("v", 1, 2))
	_, err := Density(ds, DensityOptions{X: "v", Bandwidth: -1})
	requireInvalidRange(t, err)
}

func TestDensityGrouped(t *testing.T) {
	ds := frame(t,
		num("v", 1, 2, 3, 10, 11, 12),
		cat("g", "a", "a", "a", "b", "b", "b"),
	)
	out, err := Density(ds, DensityOptions{X: "v", Points: 10, GroupBy: []string{"g"}})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Len())
	assert.Equal(t, "b", strs(t, out, "g")[10])
}

func TestDensityMissingColumn(t *testing.T) {
	ds := frame(t, num("v", 1, 2))
	_, err := Density(ds, DensityOptions{X: "w"})
	requireMissing(t, err, "x", "w")
}
