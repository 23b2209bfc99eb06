package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layerplot/internal/types"
)

func TestLoadPlotScatter(t *testing.T) {
	plot, err := NewPlotFileAdapter().LoadPlot(fixturePath("iris_scatter.yaml"))
	require.NoError(t, err)

	assert.Equal(t, PlotKind, plot.Kind)
	assert.Equal(t, "iris-scatter", plot.Metadata.Name)
	assert.Equal(t, fixturePath("iris.csv"), plot.Data)
	assert.Equal(t, "Iris sepals", plot.Layout.Title)
	assert.Equal(t, 800, plot.Layout.Width)

	require.Len(t, plot.Layers, 1)
	layer := plot.Layers[0]
	assert.Equal(t, types.MarkPoint, layer.Mark)
	assert.Equal(t, "sepal_length", layer.X)
	assert.Equal(t, "species", layer.Color)
	assert.Equal(t, 0.7, layer.Visual["opacity"])
}

func TestLoadPlotStatParams(t *testing.T) {
	plot, err := NewPlotFileAdapter().LoadPlot(fixturePath("iris_smooth_terms.yaml"))
	require.NoError(t, err)

	require.Len(t, plot.Layers, 2)
	ols := plot.Layers[0]
	assert.Equal(t, types.StatSmooth, ols.Stat)
	assert.Equal(t, types.ModelOLS, ols.Params.Model)
	assert.Equal(t, map[string]string{"linear": "sepal_length", "square": "sepal_length^2"}, ols.Params.Terms)

	loess := plot.Layers[1]
	assert.Equal(t, types.ModelLOESS, loess.Params.Model)
	assert.Equal(t, 0.9, loess.Params.Span)
	assert.Equal(t, []string{"species"}, loess.Group)
}

func TestLoadPlotResolvesLayerDataPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plot.yaml")
	content := `api_version: v1
kind: plot
metadata:
  name: paths
data: main.csv
layers:
  - mark: point
    data: other/extra.csv
  - mark: line
    data: /abs/extra.csv
  - mark: bar
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	plot, err := NewPlotFileAdapter().LoadPlot(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "main.csv"), plot.Data)
	assert.Equal(t, filepath.Join(dir, "other", "extra.csv"), plot.Layers[0].Data)
	assert.Equal(t, "/abs/extra.csv", plot.Layers[1].Data)
	assert.Equal(t, "", plot.Layers[2].Data)
}

func TestLoadPlotErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name string
		path string
		code errbuilder.ErrCode
	}{
		{name: "missing file", path: filepath.Join(dir, "absent.yaml"), code: errbuilder.CodeNotFound},
		{name: "wrong kind", path: fixturePath("wrong_kind.yaml"), code: errbuilder.CodeInvalidArgument},
		{name: "bad yaml", path: write("bad.yaml", "kind: [plot\n"), code: errbuilder.CodeInvalidArgument},
		{name: "bad version", path: write("v2.yaml", "api_version: v2\nkind: plot\n"), code: errbuilder.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlotFileAdapter().LoadPlot(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.code, errbuilder.CodeOf(err))
		})
	}
}
