package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layerplot/internal/types"
)

func sampleFigure() types.Figure {
	scatter := types.NewMap(
		types.Field("type", types.Scalar{Value: "scatter"}),
		types.Field("name", types.Scalar{Value: "setosa"}),
		types.Field("x", types.Opaque{Payload: []float64{1, 2}}),
	)
	bar := types.NewMap(
		types.Field("type", types.Scalar{Value: "bar"}),
	)
	unnamed := types.NewMap(
		types.Field("y", types.Opaque{Payload: []any{1.0, nil}}),
	)
	layout := types.NewMap(
		types.Field("title", types.Scalar{Value: "Iris"}),
		types.Field("xaxis", types.NewMap(types.Field("title", types.Symbol("sepal_length")))),
		types.Field("yaxis", types.NewMap(types.Field("showgrid", types.Scalar{Value: true}))),
	)
	return types.Figure{Data: []*types.Map{scatter, bar, unnamed}, Layout: layout}
}

func TestFigureFileWritesPlotlyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "figure.json")
	require.NoError(t, NewFigureFileAdapter(false).WriteFigure(path, sampleFigure()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	for _, fragment := range []string{
		`"type":"scatter"`,
		`"x":[1,2]`,
		`"y":[1,null]`,
		`"xaxis":{"title":"sepal_length"}`,
	} {
		if diff := cmp.Diff(true, strings.Contains(text, fragment)); diff != "" {
			t.Fatalf("unexpected figure content for %s (-want +got):\n%s", fragment, diff)
		}
	}
	assert.True(t, strings.HasPrefix(text, `{"data":[`))
}

func TestFigureFileIndent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.json")
	require.NoError(t, NewFigureFileAdapter(true).WriteFigure(path, sampleFigure()))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "\n  \"layout\"")
}

func TestFigureRoundTripSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.json")
	require.NoError(t, NewFigureFileAdapter(true).WriteFigure(path, sampleFigure()))

	summary, err := NewFigureReaderAdapter().ReadFigureSummary(path)
	require.NoError(t, err)
	want := types.FigureSummary{
		Traces:     3,
		TraceTypes: map[string]int{"scatter": 2, "bar": 1},
		Title:      "Iris",
		XTitle:     "sepal_length",
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestFigureReaderErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := NewFigureReaderAdapter().ReadFigureSummary(filepath.Join(dir, "absent.json"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = NewFigureReaderAdapter().ReadFigureSummary(bad)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
