package core

import (
	"fmt"
	"slices"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"layerplot/internal/types"
)

// statMarks is the mark a stat layer draws with unless told otherwise.
var statMarks = map[types.StatKind]types.MarkKind{
	types.StatIdentity:    types.MarkPoint,
	types.StatSmooth:      types.MarkLine,
	types.StatHistogram:   types.MarkBar,
	types.StatHistogram2D: types.MarkHeatmap,
	types.StatDensity:     types.MarkLine,
	types.StatCorrelation: types.MarkHeatmap,
}

func defaults(pairs ...any) *types.Bindings {
	b := types.NewBindings()
	for i := 0; i+1 < len(pairs); i += 2 {
		key := pairs[i].(types.Key)
		switch v := pairs[i+1].(type) {
		case types.Binding:
			b.Put(key, v.Default())
		default:
			b.Put(key, types.Literal(types.ValueOf(v)).Default())
		}
	}
	return b
}

// MarkDefaults returns the node-local bindings a layer of the given mark
// opens its scope with.
func MarkDefaults(kind types.MarkKind) *types.Bindings {
	switch kind {
	case types.MarkPoint:
		return defaults(KeyTraceType, "scatter", KeyMode, "markers")
	case types.MarkLine:
		return defaults(KeyTraceType, "scatter", KeyMode, "lines")
	case types.MarkBar:
		return defaults(KeyTraceType, "bar")
	case types.MarkBox:
		return defaults(KeyTraceType, "box")
	case types.MarkViolin:
		return defaults(KeyTraceType, "violin")
	case types.MarkText:
		return defaults(KeyTraceType, "scatter", KeyMode, "text")
	case types.MarkHeatmap:
		return defaults(KeyTraceType, "heatmap")
	case types.MarkSegment:
		return defaults(
			KeyTraceType, "scatter",
			KeyMode, "lines",
			KeyTraceX, segmentValues("x", KeyX, KeyX1),
			KeyTraceY, segmentValues("y", KeyY, KeyY1),
		)
	case types.MarkSurface:
		return defaults(
			KeyTraceType, "surface",
			KeyTraceX, uniqueValues("x", KeyFieldX),
			KeyTraceY, uniqueValues("y", KeyFieldY),
			KeyTraceZ, pivotRule(),
		)
	}
	return types.NewBindings()
}

// StatDefaults returns the node-local bindings a layer of the given stat
// opens its scope with: which transformed columns it plots and how they are
// labelled.
func StatDefaults(kind types.StatKind) *types.Bindings {
	var b *types.Bindings
	switch kind {
	case types.StatHistogram:
		b = defaults(
			KeyFieldX, types.Symbol("middle"),
			KeyFieldY, types.Symbol("count"),
			KeyTraceWidth, barWidthRule(),
		)
	case types.StatHistogram2D:
		b = defaults(
			KeyFieldZ, types.Symbol("count"),
			KeyColorscale, "Viridis",
		)
	case types.StatDensity:
		b = defaults(KeyFieldY, types.Symbol("density"))
	case types.StatCorrelation:
		b = defaults(
			KeyFieldX, types.Symbol("column"),
			KeyFieldY, types.Symbol("row"),
			KeyFieldZ, types.Symbol("correlation"),
			KeyXLabel, types.Omit,
			KeyYLabel, types.Omit,
			KeyZMin, -1.0,
			KeyZMax, 1.0,
			KeyColorscale, "RdBu",
			KeyLayerAnnotations, annotationsRule(),
		)
	default:
		b = types.NewBindings()
	}
	if mark, ok := statMarks[kind]; ok && kind != types.StatIdentity {
		b.Put(KeyMark, types.Literal(types.Scalar{Value: string(mark)}).Default())
	}
	return b
}

// LayerKind classifies a layer constructor name as a mark or a stat.
func LayerKind(kind string) (types.MarkKind, types.StatKind, error) {
	if slices.Contains(types.MarkKinds, types.MarkKind(kind)) {
		return types.MarkKind(kind), "", nil
	}
	if slices.Contains(types.StatKinds, types.StatKind(kind)) {
		return "", types.StatKind(kind), nil
	}
	return "", "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown layer kind %q", kind))
}

// segmentValues interleaves start and end coordinates with a gap after
// each pair, so one line trace draws every segment.
func segmentValues(role string, from types.Key, to types.Key) types.Binding {
	return types.Derive("segment_"+role, []types.Key{from, to, KeyPartition}, func(ctx types.Context) (types.Node, error) {
		part, start, err := partitionColumn(ctx, role, from)
		if err != nil || part == nil {
			return types.Omit, err
		}
		_, end, err := partitionColumn(ctx, role+"1", to)
		if err != nil {
			return nil, err
		}
		if end == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("segment needs a %s1 mapping", role))
		}
		starts, err := part.Values(start)
		if err != nil {
			return nil, err
		}
		ends, err := part.Values(end)
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, 3*len(starts))
		for i := range starts {
			out = append(out, starts[i], ends[i], nil)
		}
		return types.Opaque{Payload: out}, nil
	})
}

func uniqueValues(role string, field types.Key) types.Binding {
	return types.Derive("surface_"+role, []types.Key{field, KeyPartition}, func(ctx types.Context) (types.Node, error) {
		part, name, err := partitionColumn(ctx, role, field)
		if err != nil || part == nil {
			return types.Omit, err
		}
		values, err := part.Values(name)
		if err != nil {
			return nil, err
		}
		out, _ := distinct(values)
		return types.Opaque{Payload: out}, nil
	})
}

// distinct returns the distinct values in order of first appearance and the
// index of each in that order.
func distinct(values []any) ([]any, map[string]int) {
	out := []any{}
	index := map[string]int{}
	for _, v := range values {
		key := fmt.Sprint(v)
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = len(out)
		out = append(out, v)
	}
	return out, index
}

// pivotRule lays z out as a matrix with one row per distinct y and one column
// per distinct x. Cells with no observation stay null.
func pivotRule() types.Binding {
	deps := []types.Key{KeyFieldX, KeyFieldY, KeyFieldZ, KeyPartition}
	return types.Derive("surface_z", deps, func(ctx types.Context) (types.Node, error) {
		part, zName, err := partitionColumn(ctx, "z", KeyFieldZ)
		if err != nil || part == nil {
			return types.Omit, err
		}
		_, xName, err := partitionColumn(ctx, "x", KeyFieldX)
		if err != nil {
			return nil, err
		}
		_, yName, err := partitionColumn(ctx, "y", KeyFieldY)
		if err != nil {
			return nil, err
		}
		if xName == "" || yName == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("surface needs x and y mappings")
		}
		xs, err := part.Values(xName)
		if err != nil {
			return nil, err
		}
		ys, err := part.Values(yName)
		if err != nil {
			return nil, err
		}
		zs, err := part.Values(zName)
		if err != nil {
			return nil, err
		}
		columns, xIndex := distinct(xs)
		rows, yIndex := distinct(ys)
		matrix := make([][]any, len(rows))
		for i := range matrix {
			matrix[i] = make([]any, len(columns))
		}
		for i := range zs {
			matrix[yIndex[fmt.Sprint(ys[i])]][xIndex[fmt.Sprint(xs[i])]] = zs[i]
		}
		return types.Opaque{Payload: matrix}, nil
	})
}

// barWidthRule draws histogram bars across the full bin: the width column
// holds half the bin span.
func barWidthRule() types.Binding {
	return types.Derive("bar_width", []types.Key{KeyPartition}, func(ctx types.Context) (types.Node, error) {
		part, err := datasetAt(ctx, KeyPartition)
		if err != nil || part == nil || !part.Has("width") {
			return types.Omit, err
		}
		halves, err := part.Floats("width")
		if err != nil {
			return nil, err
		}
		widths := make([]float64, len(halves))
		for i, h := range halves {
			widths[i] = 2 * h
		}
		return types.Opaque{Payload: widths}, nil
	})
}

// annotationsRule writes each coefficient of a correlation layer into its
// cell. The font shrinks as the matrix grows.
func annotationsRule() types.Binding {
	deps := []types.Key{KeyTransformed, KeyAnnotationFontScale}
	return types.Derive("correlation_annotations", deps, func(ctx types.Context) (types.Node, error) {
		data, err := datasetAt(ctx, KeyTransformed)
		if err != nil || data == nil {
			return types.Omit, err
		}
		rows, err := data.Strings("row")
		if err != nil {
			return nil, err
		}
		columns, err := data.Strings("column")
		if err != nil {
			return nil, err
		}
		coefficients, err := data.Floats("correlation")
		if err != nil {
			return nil, err
		}
		fontScale, _, err := numberAt(ctx, KeyAnnotationFontScale)
		if err != nil {
			return nil, err
		}
		n := len(slices.Compact(slices.Sorted(slices.Values(rows))))
		if n == 0 {
			return types.Omit, nil
		}
		size := fontScale / float64(n)
		items := make([]types.Node, 0, len(rows))
		for i := range rows {
			items = append(items, types.NewMap(
				types.Field("x", types.Scalar{Value: columns[i]}),
				types.Field("y", types.Scalar{Value: rows[i]}),
				types.Field("text", types.Scalar{Value: fmt.Sprintf("%.2f", coefficients[i])}),
				types.Field("showarrow", types.Scalar{Value: false}),
				types.Field("font", types.NewMap(types.Field("size", types.Scalar{Value: size}))),
			))
		}
		return &types.List{Items: items}, nil
	})
}
