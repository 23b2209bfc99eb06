package adapters

import (
	"math"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layerplot/internal/ports"
	"layerplot/internal/types"
)

func num(name string, values ...float64) ports.Column {
	return ports.Column{Name: name, Type: types.FieldNumeric, Floats: values}
}

func cat(name string, values ...string) ports.Column {
	return ports.Column{Name: name, Type: types.FieldCategorical, Strings: values}
}

func newFrame(t *testing.T, columns ...ports.Column) Frame {
	t.Helper()
	f, err := NewFrame(columns...)
	require.NoError(t, err)
	return f
}

// ---------------------------------------------------------------------------
// Construction and reads
// ---------------------------------------------------------------------------

func TestNewFrameColumnsAndTypes(t *testing.T) {
	f := newFrame(t,
		num("x", 1, 2, 3),
		cat("label", "a", "b", "a"),
		ports.Column{Name: "when", Type: types.FieldTemporal, Strings: []string{"2024-01-01", "2024-01-02", "2024-01-03"}},
	)
	if diff := cmp.Diff([]string{"x", "label", "when"}, f.Names()); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, f.Len())
	assert.True(t, f.Has("label"))
	assert.False(t, f.Has("missing"))

	tests := []struct {
		column string
		want   types.FieldType
	}{
		{column: "x", want: types.FieldNumeric},
		{column: "label", want: types.FieldCategorical},
		{column: "when", want: types.FieldTemporal},
	}
	for _, tt := range tests {
		got, err := f.Type(tt.column)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.column)
	}
}

func TestNewFrameRejectsDuplicateColumns(t *testing.T) {
	_, err := NewFrame(num("x", 1), num("x", 2))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestEmptyFrame(t *testing.T) {
	f := newFrame(t)
	assert.Equal(t, 0, f.Len())
	assert.Empty(t, f.Names())
	groups, err := f.GroupBy()
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestFrameReadsByType(t *testing.T) {
	f := newFrame(t,
		num("x", 1.5, math.NaN(), 3),
		cat("label", "a", "b", "c"),
		ports.Column{Name: "when", Type: types.FieldTemporal, Strings: []string{"1970-01-01T00:00:10Z", "bogus", "1970-01-02"}},
	)

	xs, err := f.Floats("x")
	require.NoError(t, err)
	assert.Equal(t, 1.5, xs[0])
	assert.True(t, math.IsNaN(xs[1]))

	_, err = f.Floats("label")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	strs, err := f.Strings("x")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"1.5", "NaN", "3"}, strs); diff != "" {
		t.Fatalf("unexpected strings (-want +got):\n%s", diff)
	}

	seconds, err := f.Floats("when")
	require.NoError(t, err)
	assert.Equal(t, 10.0, seconds[0])
	assert.True(t, math.IsNaN(seconds[1]))
	assert.Equal(t, 86400.0, seconds[2])

	values, err := f.Values("x")
	require.NoError(t, err)
	if diff := cmp.Diff([]any{1.5, nil, 3.0}, values); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}

	_, err = f.Values("missing")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

// ---------------------------------------------------------------------------
// Transformations
// ---------------------------------------------------------------------------

func TestFrameGroupByFirstAppearance(t *testing.T) {
	f := newFrame(t,
		num("x", 1, 2, 3, 4, 5),
		cat("g", "b", "a", "b", "c", "a"),
		cat("h", "u", "u", "v", "u", "u"),
	)
	groups, err := f.GroupBy("g", "h")
	require.NoError(t, err)

	labels := [][]string{}
	rows := []int{}
	for _, group := range groups {
		labels = append(labels, group.Labels)
		rows = append(rows, group.Data.Len())
	}
	if diff := cmp.Diff([][]string{{"b", "u"}, {"a", "u"}, {"b", "v"}, {"c", "u"}}, labels); diff != "" {
		t.Fatalf("unexpected group labels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 1, 1}, rows); diff != "" {
		t.Fatalf("unexpected group sizes (-want +got):\n%s", diff)
	}

	xs, err := groups[1].Data.Floats("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, xs)
}

func TestFrameSelectDropAndWith(t *testing.T) {
	f := newFrame(t, num("x", 1, 2), num("y", 3, 4), cat("g", "a", "b"))

	selected, err := f.Select("y", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, selected.Names())

	_, err = f.Select("nope")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	dropped := f.Drop("y", "unknown")
	assert.Equal(t, []string{"x", "g"}, dropped.Names())
	assert.Equal(t, []string{"x", "y", "g"}, f.Names())

	added, err := f.WithFloats("z", []float64{5, 6})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "g", "z"}, added.Names())

	replaced, err := f.WithStrings("x", types.FieldNumeric, []string{"p", "q"})
	require.NoError(t, err)
	kind, err := replaced.Type("x")
	require.NoError(t, err)
	assert.Equal(t, types.FieldCategorical, kind)

	_, err = f.WithFloats("z", []float64{1})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestFrameConcatAndSubset(t *testing.T) {
	a := newFrame(t, num("x", 1, 2), cat("g", "a", "a"))
	b := newFrame(t, num("x", 3), cat("g", "b"))

	joined, err := a.Concat(b)
	require.NoError(t, err)
	xs, err := joined.Floats("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, xs)

	empty := newFrame(t)
	same, err := empty.Concat(a)
	require.NoError(t, err)
	assert.Equal(t, 2, same.Len())

	subset := joined.Subset([]int{2, 0})
	gs, err := subset.Strings("g")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, gs)

	none := joined.Subset(nil)
	assert.Equal(t, 0, none.Len())
	assert.Equal(t, []string{"x", "g"}, none.Names())
}

func TestFrameSortBy(t *testing.T) {
	f := newFrame(t, num("x", 3, 1, 2), cat("g", "c", "a", "b"))
	sorted, err := f.SortBy("x")
	require.NoError(t, err)
	gs, err := sorted.Strings("g")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, gs)

	temporal := newFrame(t,
		ports.Column{Name: "when", Type: types.FieldTemporal, Strings: []string{"2024-03-01", "", "2024-01-01"}},
		cat("g", "late", "none", "early"),
	)
	sorted, err = temporal.SortBy("when")
	require.NoError(t, err)
	gs, err = sorted.Strings("g")
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "none"}, gs)

	_, err = f.SortBy("missing")
	require.Error(t, err)
}

func TestFrameNewBuildsSameImplementation(t *testing.T) {
	f := newFrame(t, num("x", 1))
	out, err := f.New(num("y", 1, 2, 3))
	require.NoError(t, err)
	var frame Frame
	assert.IsType(t, frame, out)
	assert.Equal(t, 3, out.Len())
}
