package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestInspectApp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "figure.json")
	content := `{"data":[{"type":"bar"},{"type":"scatter"},{"x":[1]}],"layout":{"title":"Iris","xaxis":{"title":"petal_length"}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	service := NewService()
	result, err := service.Inspect(InspectRequest{FigurePath: path})
	require.NoError(t, err)
	want := InspectResult{
		Traces: 3,
		TraceTypes: []TraceTypeCount{
			{Type: "bar", Count: 1},
			{Type: "scatter", Count: 2},
		},
		Title:  "Iris",
		XTitle: "petal_length",
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("unexpected inspect result (-want +got):\n%s", diff)
	}
}

func TestInspectRequiresPath(t *testing.T) {
	_, err := NewService().Inspect(InspectRequest{FigurePath: " "})
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}
