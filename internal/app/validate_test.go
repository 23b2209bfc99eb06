package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layerplot/internal/types"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(root, "fixtures", name)
}

func TestValidateApp(t *testing.T) {
	tests := []struct {
		file   string
		name   string
		layers int
		traces int
	}{
		{file: "iris_scatter.yaml", name: "iris-scatter", layers: 1, traces: 3},
		{file: "iris_layers.yaml", name: "iris-layers", layers: 3, traces: 5},
		{file: "iris_faceted.yaml", name: "iris-faceted", layers: 2, traces: 6},
		{file: "iris_correlation.yaml", name: "iris-correlation", layers: 1, traces: 1},
		{file: "iris_smooth_terms.yaml", name: "iris-smooth-terms", layers: 2, traces: 4},
		{file: "segments.yaml", name: "segments", layers: 2, traces: 2},
	}
	service := NewService()
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := service.Validate(t.Context(), ValidateRequest{PlotPath: fixture(t, tt.file)})
			require.NoError(t, err)
			want := ValidateResult{PlotName: tt.name, Layers: tt.layers, Traces: tt.traces}
			if diff := cmp.Diff(want, result); diff != "" {
				t.Fatalf("unexpected validate result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateStrict(t *testing.T) {
	result, err := NewService().Validate(t.Context(), ValidateRequest{
		PlotPath: fixture(t, "iris_layers.yaml"),
		Strict:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Traces)
}

func TestValidateReportsTypedErrors(t *testing.T) {
	service := NewService()

	_, err := service.Validate(t.Context(), ValidateRequest{PlotPath: fixture(t, "missing_column.yaml")})
	var missing types.MissingColumnError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, types.MissingColumnError{Role: "color", Column: "genus"}, missing)

	_, err = service.Validate(t.Context(), ValidateRequest{PlotPath: fixture(t, "invalid_backend.yaml")})
	var backend types.UnknownBackendError
	require.True(t, errors.As(err, &backend), "got %v", err)
	assert.Equal(t, "matplotlib", backend.Backend)

	_, err = service.Validate(t.Context(), ValidateRequest{PlotPath: fixture(t, "unknown_mark.yaml")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = service.Validate(t.Context(), ValidateRequest{PlotPath: fixture(t, "absent.yaml")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	_, err = service.Validate(t.Context(), ValidateRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestValidatePlotFile(t *testing.T) {
	base := func() types.PlotFile {
		return types.PlotFile{
			Kind:     "plot",
			Metadata: types.Metadata{Name: "p"},
			Layers:   []types.LayerSpec{{Mark: types.MarkPoint, X: "a"}},
		}
	}
	require.NoError(t, ValidatePlotFile(t.Context(), base()))

	tests := []struct {
		name   string
		mutate func(*types.PlotFile)
	}{
		{name: "no name", mutate: func(f *types.PlotFile) { f.Metadata.Name = "" }},
		{name: "no layers", mutate: func(f *types.PlotFile) { f.Layers = nil }},
		{name: "empty layer", mutate: func(f *types.PlotFile) { f.Layers = []types.LayerSpec{{}} }},
		{name: "negative bins", mutate: func(f *types.PlotFile) { f.Layers[0].Params.Bins = -1 }},
		{name: "span too wide", mutate: func(f *types.PlotFile) { f.Layers[0].Params.Span = 1.5 }},
		{name: "unknown model", mutate: func(f *types.PlotFile) { f.Layers[0].Params.Model = "spline" }},
		{
			name: "loess with terms",
			mutate: func(f *types.PlotFile) {
				f.Layers[0].Params.Model = types.ModelLOESS
				f.Layers[0].Params.Terms = map[string]string{"t": "a"}
			},
		},
		{name: "blank facet", mutate: func(f *types.PlotFile) { f.Facet = []string{""} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := base()
			tt.mutate(&file)
			err := ValidatePlotFile(t.Context(), file)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}
