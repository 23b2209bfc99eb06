package core

import (
	"fmt"
	"math"
	"slices"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/aclements/go-moremath/scale"
	mstats "github.com/aclements/go-moremath/stats"
	"github.com/rs/zerolog/log"

	"layerplot/internal/policies"
	"layerplot/internal/ports"
	"layerplot/internal/shared"
	"layerplot/internal/stats"
	"layerplot/internal/types"
)

func transformRule() types.Binding {
	deps := []types.Key{
		KeyData, KeyStat, KeyX, KeyY, KeyGroupBy,
		KeyBins, KeyBandwidth, KeyPoints, KeyPredictors, KeyTerms, KeyModel, KeySpan, KeyDegree,
	}
	return types.Derive("transformed", deps, func(ctx types.Context) (types.Node, error) {
		ds, err := datasetAt(ctx, KeyData)
		if err != nil {
			return nil, err
		}
		if ds == nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("layer has no data")
		}
		kind, _, err := stringAt(ctx, KeyStat)
		if err != nil {
			return nil, err
		}
		groupBy, err := columnsAt(ctx, KeyGroupBy)
		if err != nil {
			return nil, err
		}
		x, err := columnAt(ctx, KeyX)
		if err != nil {
			return nil, err
		}
		y, err := columnAt(ctx, KeyY)
		if err != nil {
			return nil, err
		}

		var out ports.Dataset
		switch types.StatKind(kind) {
		case "", types.StatIdentity:
			return types.Opaque{Payload: ds}, nil
		case types.StatHistogram:
			if err := requireMapping(kind, "x", x); err != nil {
				return nil, err
			}
			bins, _, err := intAt(ctx, KeyBins)
			if err != nil {
				return nil, err
			}
			out, err = stats.Histogram(ds, stats.HistogramOptions{X: x, Bins: bins, GroupBy: groupBy})
			if err != nil {
				return nil, err
			}
		case types.StatHistogram2D:
			if err := requireMapping(kind, "x", x); err != nil {
				return nil, err
			}
			if err := requireMapping(kind, "y", y); err != nil {
				return nil, err
			}
			bins, _, err := intAt(ctx, KeyBins)
			if err != nil {
				return nil, err
			}
			out, err = stats.Histogram2D(ds, stats.Histogram2DOptions{X: x, Y: y, Bins: bins, GroupBy: groupBy})
			if err != nil {
				return nil, err
			}
		case types.StatDensity:
			if err := requireMapping(kind, "x", x); err != nil {
				return nil, err
			}
			bandwidth, _, err := numberAt(ctx, KeyBandwidth)
			if err != nil {
				return nil, err
			}
			points, _, err := intAt(ctx, KeyPoints)
			if err != nil {
				return nil, err
			}
			out, err = stats.Density(ds, stats.DensityOptions{X: x, Bandwidth: bandwidth, Points: points, GroupBy: groupBy})
			if err != nil {
				return nil, err
			}
		case types.StatSmooth:
			opts, err := smoothOptions(ctx, x, y, groupBy)
			if err != nil {
				return nil, err
			}
			out, err = stats.Smooth(ds, opts)
			if err != nil {
				return nil, err
			}
		case types.StatCorrelation:
			out, err = stats.Correlation(ds)
			if err != nil {
				return nil, err
			}
		default:
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown stat %q", kind))
		}
		log.Ctx(ctx.Context()).Debug().
			Str("stat", kind).
			Int("rows_in", ds.Len()).
			Int("rows_out", out.Len()).
			Msg("layer data transformed")
		return types.Opaque{Payload: out}, nil
	})
}

func smoothOptions(ctx types.Context, x string, y string, groupBy []string) (stats.SmoothOptions, error) {
	opts := stats.SmoothOptions{X: x, Y: y, GroupBy: groupBy}
	if err := requireMapping(string(types.StatSmooth), "x", x); err != nil {
		return opts, err
	}
	if err := requireMapping(string(types.StatSmooth), "y", y); err != nil {
		return opts, err
	}
	var err error
	if opts.Predictors, err = columnsAt(ctx, KeyPredictors); err != nil {
		return opts, err
	}
	if opts.Terms, err = termsAt(ctx, KeyTerms); err != nil {
		return opts, err
	}
	model, _, err := stringAt(ctx, KeyModel)
	if err != nil {
		return opts, err
	}
	opts.Model = types.SmoothModel(model)
	if opts.Span, _, err = numberAt(ctx, KeySpan); err != nil {
		return opts, err
	}
	if opts.Degree, _, err = intAt(ctx, KeyDegree); err != nil {
		return opts, err
	}
	return opts, nil
}

func requireMapping(stat string, role string, column string) error {
	if column != "" {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s needs a %s mapping", stat, role))
}

// groupByRule lists the columns a layer is partitioned on: explicit groups,
// facets, then every categorical column a colour, size or symbol mapping
// names.
func groupByRule() types.Binding {
	deps := []types.Key{KeyData, KeyStat, KeyGroup, KeyFacet, KeyColor, KeySize, KeySymbol}
	return types.Derive("group_by", deps, func(ctx types.Context) (types.Node, error) {
		kind, _, err := stringAt(ctx, KeyStat)
		if err != nil {
			return nil, err
		}
		if types.StatKind(kind) == types.StatCorrelation {
			return &types.List{}, nil
		}
		groups, err := columnsAt(ctx, KeyGroup)
		if err != nil {
			return nil, err
		}
		facets, err := columnsAt(ctx, KeyFacet)
		if err != nil {
			return nil, err
		}
		names := appendUnique(nil, groups...)
		names = appendUnique(names, facets...)

		ds, err := datasetAt(ctx, KeyData)
		if err != nil {
			return nil, err
		}
		for _, key := range []types.Key{KeyColor, KeySize, KeySymbol} {
			column, err := columnAt(ctx, key)
			if err != nil {
				return nil, err
			}
			if column == "" || ds == nil {
				continue
			}
			if !ds.Has(column) {
				return nil, types.MissingColumnError{Role: string(key), Column: column}
			}
			if key != KeySymbol {
				fieldType, err := ds.Type(column)
				if err != nil {
					return nil, err
				}
				if fieldType == types.FieldNumeric {
					continue
				}
			}
			names = appendUnique(names, column)
		}

		items := make([]types.Node, 0, len(names))
		for _, name := range names {
			items = append(items, types.Symbol(name))
		}
		return &types.List{Items: items}, nil
	})
}

func appendUnique(names []string, more ...string) []string {
	for _, name := range more {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// tracesRule expands a layer into one trace per partition of its
// transformed data.
func tracesRule() types.Binding {
	deps := []types.Key{KeyMark, KeyTransformed, KeyGroupBy}
	return types.Derive("traces", deps, func(ctx types.Context) (types.Node, error) {
		mark, _, err := stringAt(ctx, KeyMark)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(types.MarkKinds, types.MarkKind(mark)) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown mark %q", mark))
		}
		data, err := datasetAt(ctx, KeyTransformed)
		if err != nil || data == nil {
			return types.Omit, err
		}
		transformed, err := ctx.Get(KeyTransformed)
		if err != nil {
			return nil, err
		}
		groups, err := columnsAt(ctx, KeyGroupBy)
		if err != nil {
			return nil, err
		}
		for _, name := range groups {
			if !data.Has(name) {
				return nil, types.MissingColumnError{Role: "group", Column: name}
			}
		}
		parts, err := data.GroupBy(groups...)
		if err != nil {
			return nil, err
		}

		template := traceTemplate()
		items := make([]types.Node, 0, len(parts))
		for _, part := range parts {
			local := types.NewBindings().
				Put(KeyTransformed, types.Literal(transformed).Explicit()).
				Put(KeyPartition, types.Literal(types.Opaque{Payload: part.Data}).Explicit())
			if len(groups) > 0 {
				local.Put(KeyGroupLabel, types.Literal(types.Scalar{Value: shared.GroupLabel(part.Labels)}).Explicit())
			}
			trace, err := ctx.Child(local).Resolve(template)
			if err != nil {
				return nil, err
			}
			items = append(items, trace)
		}
		log.Ctx(ctx.Context()).Debug().
			Str("mark", mark).
			Int("traces", len(items)).
			Strs("group_by", groups).
			Msg("layer compiled")
		return &types.List{Items: items, Splice: true}, nil
	})
}

// partitionColumn returns the partition and the column a mapping names, or a
// nil dataset when the mapping is omitted.
func partitionColumn(ctx types.Context, role string, field types.Key) (ports.Dataset, string, error) {
	name, err := columnAt(ctx, field)
	if err != nil || name == "" {
		return nil, "", err
	}
	part, err := datasetAt(ctx, KeyPartition)
	if err != nil || part == nil {
		return nil, "", err
	}
	if !part.Has(name) {
		return nil, "", types.MissingColumnError{Role: role, Column: name}
	}
	return part, name, nil
}

func columnValues(role string, field types.Key) types.Binding {
	return types.Derive("trace_"+role, []types.Key{field, KeyPartition}, func(ctx types.Context) (types.Node, error) {
		return partitionValues(ctx, role, field)
	})
}

func partitionValues(ctx types.Context, role string, field types.Key) (types.Node, error) {
	part, name, err := partitionColumn(ctx, role, field)
	if err != nil || part == nil {
		return types.Omit, err
	}
	values, err := part.Values(name)
	if err != nil {
		return nil, err
	}
	return types.Opaque{Payload: values}, nil
}

// textRule prefers a literal label, shared by every point, over a text
// column.
func textRule() types.Binding {
	deps := []types.Key{KeyTextLiteral, KeyText, KeyPartition}
	return types.Derive("trace_text", deps, func(ctx types.Context) (types.Node, error) {
		literal, err := ctx.Get(KeyTextLiteral)
		if err != nil {
			return nil, err
		}
		if policies.Present(literal) {
			return literal, nil
		}
		return partitionValues(ctx, "text", KeyText)
	})
}

// firstLabel is the category a partition was cut on for the column.
func firstLabel(part ports.Dataset, name string) (string, bool, error) {
	labels, err := part.Strings(name)
	if err != nil || len(labels) == 0 {
		return "", false, err
	}
	return labels[0], true, nil
}

func colorRule() types.Binding {
	deps := []types.Key{KeyMarkerColor, KeyColor, KeyPartition, KeyColorPalette}
	return types.Derive("trace_color", deps, func(ctx types.Context) (types.Node, error) {
		literal, err := ctx.Get(KeyMarkerColor)
		if err != nil {
			return nil, err
		}
		if policies.Present(literal) {
			if scalar, ok := literal.(types.Scalar); ok {
				if raw, ok := scalar.Value.(string); ok {
					return types.Scalar{Value: policies.NormalizeColor(raw)}, nil
				}
			}
			return literal, nil
		}
		part, name, err := partitionColumn(ctx, "color", KeyColor)
		if err != nil || part == nil {
			return types.Omit, err
		}
		fieldType, err := part.Type(name)
		if err != nil {
			return nil, err
		}
		if fieldType == types.FieldNumeric {
			values, err := part.Values(name)
			if err != nil {
				return nil, err
			}
			return types.Opaque{Payload: values}, nil
		}
		label, ok, err := firstLabel(part, name)
		if err != nil || !ok {
			return types.Omit, err
		}
		palette, err := payloadAt[[]string](ctx, KeyColorPalette)
		if err != nil {
			return nil, err
		}
		return types.Scalar{Value: Assign(ctx, "color", label, palette)}, nil
	})
}

// lineColorRule follows the marker colour unless that colour varies per
// point.
func lineColorRule() types.Binding {
	return types.Derive("trace_line_color", []types.Key{KeyTraceColor}, func(ctx types.Context) (types.Node, error) {
		color, err := ctx.Get(KeyTraceColor)
		if err != nil {
			return nil, err
		}
		if _, ok := color.(types.Opaque); ok {
			return types.Omit, nil
		}
		return color, nil
	})
}

func sizeRule() types.Binding {
	deps := []types.Key{KeyMarkerSize, KeySize, KeyPartition, KeyTransformed, KeySizePalette, KeySizeMin, KeySizeMax}
	return types.Derive("trace_size", deps, func(ctx types.Context) (types.Node, error) {
		literal, err := ctx.Get(KeyMarkerSize)
		if err != nil {
			return nil, err
		}
		if policies.Present(literal) {
			return literal, nil
		}
		part, name, err := partitionColumn(ctx, "size", KeySize)
		if err != nil || part == nil {
			return types.Omit, err
		}
		fieldType, err := part.Type(name)
		if err != nil {
			return nil, err
		}
		if fieldType != types.FieldNumeric {
			label, ok, err := firstLabel(part, name)
			if err != nil || !ok {
				return types.Omit, err
			}
			palette, err := payloadAt[[]float64](ctx, KeySizePalette)
			if err != nil {
				return nil, err
			}
			return types.Scalar{Value: Assign(ctx, "size", label, palette)}, nil
		}

		// Numeric sizes are rescaled over the whole layer so partitions share
		// one scale.
		all, err := datasetAt(ctx, KeyTransformed)
		if err != nil {
			return nil, err
		}
		domain, err := all.Floats(name)
		if err != nil {
			return nil, err
		}
		lo, hi := mstats.Bounds(finiteValues(domain))
		sizeMin, _, err := numberAt(ctx, KeySizeMin)
		if err != nil {
			return nil, err
		}
		sizeMax, _, err := numberAt(ctx, KeySizeMax)
		if err != nil {
			return nil, err
		}
		values, err := part.Floats(name)
		if err != nil {
			return nil, err
		}
		linear := scale.Linear{Min: lo, Max: hi}
		sizes := make([]any, len(values))
		for i, v := range values {
			if math.IsNaN(v) || math.IsNaN(lo) {
				continue
			}
			sizes[i] = sizeMin + linear.Map(v)*(sizeMax-sizeMin)
		}
		return types.Opaque{Payload: sizes}, nil
	})
}

func symbolRule() types.Binding {
	deps := []types.Key{KeyMarkerSymbol, KeySymbol, KeyPartition, KeySymbolPalette}
	return types.Derive("trace_symbol", deps, func(ctx types.Context) (types.Node, error) {
		literal, err := ctx.Get(KeyMarkerSymbol)
		if err != nil {
			return nil, err
		}
		if policies.Present(literal) {
			return literal, nil
		}
		part, name, err := partitionColumn(ctx, "symbol", KeySymbol)
		if err != nil || part == nil {
			return types.Omit, err
		}
		label, ok, err := firstLabel(part, name)
		if err != nil || !ok {
			return types.Omit, err
		}
		palette, err := payloadAt[[]string](ctx, KeySymbolPalette)
		if err != nil {
			return nil, err
		}
		return types.Scalar{Value: Assign(ctx, "symbol", label, palette)}, nil
	})
}

func finiteValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
