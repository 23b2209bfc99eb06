package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layerplot/internal/app"
	"layerplot/tests/testutil"
)

var goldenPlots = []string{
	"iris_scatter.yaml",
	"iris_layers.yaml",
	"iris_faceted.yaml",
	"iris_correlation.yaml",
	"iris_smooth_terms.yaml",
	"segments.yaml",
}

func renderFixture(t *testing.T, plot string, output string) []byte {
	t.Helper()
	data, _ := renderFixtureResult(t, plot, output)
	return data
}

func renderFixtureResult(t *testing.T, plot string, output string) ([]byte, app.RenderResult) {
	t.Helper()
	result, err := app.NewService().Render(t.Context(), app.RenderRequest{
		PlotPath:   testutil.Fixture(t, plot),
		OutputPath: output,
		Indent:     true,
	})
	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	return data, result
}

// renderedFigure is the subset of the plotly figure shape every sample plot
// must carry.
type renderedFigure struct {
	Data []struct {
		Type string `json:"type"`
	} `json:"data"`
	Layout map[string]any `json:"layout"`
}

// ---------------------------------------------------------------------------
// Figure shape
// ---------------------------------------------------------------------------

func TestSamplePlotFigureShape(t *testing.T) {
	tests := []struct {
		plot   string
		traces int
		kinds  []string
	}{
		{plot: "iris_scatter.yaml", traces: 3, kinds: []string{"scatter"}},
		{plot: "iris_layers.yaml", traces: 5, kinds: []string{"scatter", "bar"}},
		{plot: "iris_faceted.yaml", traces: 6, kinds: []string{"scatter"}},
		{plot: "iris_correlation.yaml", traces: 1, kinds: []string{"heatmap"}},
		{plot: "iris_smooth_terms.yaml", traces: 4, kinds: []string{"scatter"}},
		{plot: "segments.yaml", traces: 2, kinds: []string{"scatter"}},
	}
	outDir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.plot, func(t *testing.T) {
			data, result := renderFixtureResult(t, tt.plot, filepath.Join(outDir, tt.plot+".json"))
			assert.Equal(t, tt.traces, result.Traces)

			var fig renderedFigure
			require.NoError(t, json.Unmarshal(data, &fig))
			require.Len(t, fig.Data, tt.traces)
			assert.NotNil(t, fig.Layout)

			kinds := map[string]bool{}
			for _, trace := range fig.Data {
				kinds[trace.Type] = true
			}
			got := make([]string, 0, len(kinds))
			for kind := range kinds {
				got = append(got, kind)
			}
			assert.ElementsMatch(t, tt.kinds, got)
		})
	}
}

// ---------------------------------------------------------------------------
// Golden files
// ---------------------------------------------------------------------------

// TestGoldenFigures renders every sample plot and compares the figure JSON
// against committed golden files. If a golden file does not exist yet it is
// written so it can be committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenFigures(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")
	outDir := t.TempDir()

	for _, plot := range goldenPlots {
		name := strings.TrimSuffix(plot, filepath.Ext(plot)) + ".json"
		t.Run(name, func(t *testing.T) {
			actual := renderFixture(t, plot, filepath.Join(outDir, name))

			goldenPath := filepath.Join(goldenDir, name)
			if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
				require.NoError(t, os.MkdirAll(goldenDir, 0o755))
				require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
				t.Logf("golden file written: %s (commit it)", goldenPath)
				return
			}

			expected, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.Equal(t, string(expected), string(actual),
				"golden mismatch for %s -- delete testdata/golden/ and re-run to regenerate", name)
		})
	}
}

// TestGoldenRenderDeterministic renders each plot twice and requires
// byte-identical output.
func TestGoldenRenderDeterministic(t *testing.T) {
	outDir := t.TempDir()
	for _, plot := range goldenPlots {
		t.Run(plot, func(t *testing.T) {
			first := renderFixture(t, plot, filepath.Join(outDir, "first-"+plot+".json"))
			second := renderFixture(t, plot, filepath.Join(outDir, "second-"+plot+".json"))
			assert.Equal(t, string(first), string(second))
		})
	}
}
