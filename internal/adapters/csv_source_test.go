package adapters

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layerplot/internal/types"
)

func fixturePath(name string) string {
	return filepath.Join("..", "..", "fixtures", name)
}

func TestCSVSourceLoadsIris(t *testing.T) {
	ds, err := NewCSVSourceAdapter().Load(fixturePath("iris.csv"))
	require.NoError(t, err)

	want := []string{"sepal_length", "sepal_width", "petal_length", "petal_width", "species"}
	if diff := cmp.Diff(want, ds.Names()); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}
	assert.Equal(t, 15, ds.Len())

	kind, err := ds.Type("sepal_length")
	require.NoError(t, err)
	assert.Equal(t, types.FieldNumeric, kind)
	kind, err = ds.Type("species")
	require.NoError(t, err)
	assert.Equal(t, types.FieldCategorical, kind)

	lengths, err := ds.Floats("sepal_length")
	require.NoError(t, err)
	assert.Equal(t, 5.1, lengths[0])
}

func TestCSVSourceDetectsTemporalAndMissing(t *testing.T) {
	ds, err := NewCSVSourceAdapter().Load(fixturePath("segments.csv"))
	require.NoError(t, err)

	kind, err := ds.Type("observed")
	require.NoError(t, err)
	assert.Equal(t, types.FieldTemporal, kind)

	kind, err = ds.Type("start")
	require.NoError(t, err)
	assert.Equal(t, types.FieldNumeric, kind)

	lows, err := ds.Floats("low")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(lows[3]))

	values, err := ds.Values("low")
	require.NoError(t, err)
	assert.Nil(t, values[3])
}

func TestCSVSourceErrors(t *testing.T) {
	_, err := NewCSVSourceAdapter().Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	bad := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("a,b\n1,2,3\n"), 0644))
	_, err = NewCSVSourceAdapter().Load(bad)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
