package core

import (
	"layerplot/internal/policies"
	"layerplot/internal/ports"
	"layerplot/internal/types"
)

const DefaultAnnotationFontScale = 48.0

// StandardLibrary returns the root bindings every plot resolves against. All
// of them are defaults, so any explicit binding a plot or layer supplies
// replaces them.
func StandardLibrary(policy ports.EncodingPolicyPort) *types.Bindings {
	lib := types.NewBindings()
	def := func(key types.Key, n types.Node) {
		lib.Put(key, types.Literal(n).Default())
	}
	rule := func(key types.Key, binding types.Binding) {
		lib.Put(key, binding.Default())
	}

	def(KeyData, types.Omit)
	def(KeyStat, types.Scalar{Value: string(types.StatIdentity)})
	def(KeyMark, types.Scalar{Value: string(types.MarkPoint)})
	def(KeyBins, types.Omit)
	def(KeyBandwidth, types.Omit)
	def(KeyPoints, types.Omit)
	def(KeyPredictors, types.Omit)
	def(KeyTerms, types.Omit)
	def(KeyModel, types.Scalar{Value: string(types.ModelOLS)})
	def(KeySpan, types.Omit)
	def(KeyDegree, types.Omit)
	rule(KeyTransformed, transformRule())
	rule(KeyGroupBy, groupByRule())

	for _, key := range []types.Key{KeyX, KeyY, KeyZ, KeyX1, KeyY1, KeyColor, KeySize, KeySymbol, KeyText, KeyGroup} {
		def(key, types.Omit)
	}
	def(KeyFacet, &types.List{})
	for _, key := range []types.Key{KeyMarkerColor, KeyMarkerSize, KeyMarkerSymbol, KeyOpacity, KeyLineWidth, KeyLineDash, KeyName, KeyTextLiteral} {
		def(key, types.Omit)
	}

	def(KeyFieldX, KeyX)
	def(KeyFieldY, KeyY)
	def(KeyFieldZ, KeyZ)
	def(KeyXLabel, KeyX)
	def(KeyYLabel, KeyFieldY)

	rule(KeyTraces, tracesRule())
	def(KeyPartition, KeyTransformed)
	def(KeyGroupLabel, types.Omit)
	def(KeyTraceType, types.Scalar{Value: "scatter"})
	def(KeyMode, types.Omit)
	rule(KeyTraceName, types.Derive("trace_name", []types.Key{KeyName, KeyGroupLabel}, func(ctx types.Context) (types.Node, error) {
		name, err := ctx.Get(KeyName)
		if err != nil {
			return nil, err
		}
		label, err := ctx.Get(KeyGroupLabel)
		if err != nil {
			return nil, err
		}
		return policies.PreferLiteral(name, label), nil
	}))
	rule(KeyTraceX, columnValues("x", KeyFieldX))
	rule(KeyTraceY, columnValues("y", KeyFieldY))
	rule(KeyTraceZ, columnValues("z", KeyFieldZ))
	rule(KeyTraceText, textRule())
	def(KeyTraceWidth, types.Omit)
	rule(KeyTraceColor, colorRule())
	rule(KeyTraceLineColor, lineColorRule())
	rule(KeyTraceSize, sizeRule())
	rule(KeyTraceSymbol, symbolRule())
	def(KeyZMin, types.Omit)
	def(KeyZMax, types.Omit)
	def(KeyColorscale, types.Omit)

	rule(KeyLayerXTitle, titleRule("layer_x_title", KeyXTitle, KeyXLabel))
	rule(KeyLayerYTitle, titleRule("layer_y_title", KeyYTitle, KeyYLabel))
	rule(KeyLayerBoxMode, groupModeRule("layer_box_mode", types.MarkBox))
	rule(KeyLayerViolinMode, groupModeRule("layer_violin_mode", types.MarkViolin))
	def(KeyLayerAnnotations, types.Omit)

	def(KeyLayout, layoutTemplate())
	def(KeyLayers, types.Opaque{Payload: []*types.Bindings{}})
	def(KeyWidth, types.Scalar{Value: 700})
	def(KeyHeight, types.Scalar{Value: 500})
	def(KeyMargin, types.NewMap(
		types.Field("l", types.Scalar{Value: 60}),
		types.Field("r", types.Scalar{Value: 30}),
		types.Field("t", types.Scalar{Value: 50}),
		types.Field("b", types.Scalar{Value: 60}),
	))
	def(KeyTitle, types.Omit)
	def(KeyXTitle, types.Omit)
	def(KeyYTitle, types.Omit)
	rule(KeyXAxisTitle, acrossLayers("xaxis_title", KeyLayerXTitle, policies.LastNonNull))
	rule(KeyYAxisTitle, acrossLayers("yaxis_title", KeyLayerYTitle, policies.LastNonNull))
	def(KeyGridColor, types.Scalar{Value: policies.NormalizeColor(policies.GridColor)})
	def(KeyShowGrid, types.Scalar{Value: true})
	def(KeyBackground, types.Scalar{Value: policies.NormalizeColor(policies.BackgroundColor)})
	rule(KeyBoxMode, acrossLayers("box_mode", KeyLayerBoxMode, policies.FirstNonNull))
	rule(KeyViolinMode, acrossLayers("violin_mode", KeyLayerViolinMode, policies.FirstNonNull))
	rule(KeyAnnotations, acrossLayers("annotations", KeyLayerAnnotations, concatLists))
	def(KeyAnnotationFontScale, types.Scalar{Value: DefaultAnnotationFontScale})

	sizeMin, sizeMax := policy.SizeRange()
	def(KeyColorPalette, types.Opaque{Payload: policy.Colors()})
	def(KeySizePalette, types.Opaque{Payload: policy.Sizes()})
	def(KeySymbolPalette, types.Opaque{Payload: policy.Symbols()})
	def(KeySizeMin, types.Scalar{Value: sizeMin})
	def(KeySizeMax, types.Scalar{Value: sizeMax})
	def(KeyBackend, types.Scalar{Value: types.BackendPlotly})
	def(KeyDropEmpty, types.Scalar{Value: true})
	return lib
}

// traceTemplate is resolved once per partition of a layer's transformed
// data.
func traceTemplate() *types.Map {
	return types.NewMap(
		types.Field("type", KeyTraceType),
		types.Field("mode", KeyMode),
		types.Field("name", KeyTraceName),
		types.Field("x", KeyTraceX),
		types.Field("y", KeyTraceY),
		types.Field("z", KeyTraceZ),
		types.Field("text", KeyTraceText),
		types.Field("width", KeyTraceWidth),
		types.Field("opacity", KeyOpacity),
		types.Field("zmin", KeyZMin),
		types.Field("zmax", KeyZMax),
		types.Field("colorscale", KeyColorscale),
		types.Field("marker", types.NewMap(
			types.Field("color", KeyTraceColor),
			types.Field("size", KeyTraceSize),
			types.Field("symbol", KeyTraceSymbol),
		)),
		types.Field("line", types.NewMap(
			types.Field("color", KeyTraceLineColor),
			types.Field("width", KeyLineWidth),
			types.Field("dash", KeyLineDash),
		)),
	)
}

func layoutTemplate() *types.Map {
	axis := func(title types.Key) *types.Map {
		return types.NewMap(
			types.Field("title", title),
			types.Field("gridcolor", KeyGridColor),
			types.Field("showgrid", KeyShowGrid),
		)
	}
	return types.NewMap(
		types.Field("width", KeyWidth),
		types.Field("height", KeyHeight),
		types.Field("margin", KeyMargin),
		types.Field("title", KeyTitle),
		types.Field("xaxis", axis(KeyXAxisTitle)),
		types.Field("yaxis", axis(KeyYAxisTitle)),
		types.Field("plot_bgcolor", KeyBackground),
		types.Field("boxmode", KeyBoxMode),
		types.Field("violinmode", KeyViolinMode),
		types.Field("annotations", KeyAnnotations),
	)
}

// acrossLayers reads key in every layer scope, in layer order, and folds the
// values with merge.
func acrossLayers(name string, key types.Key, merge func([]types.Node) types.Node) types.Binding {
	return types.Derive(name, []types.Key{KeyLayers}, func(ctx types.Context) (types.Node, error) {
		layers, err := payloadAt[[]*types.Bindings](ctx, KeyLayers)
		if err != nil {
			return nil, err
		}
		values := make([]types.Node, 0, len(layers))
		for _, local := range layers {
			v, err := ctx.Child(local).Get(key)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return merge(values), nil
	})
}

func concatLists(values []types.Node) types.Node {
	items := []types.Node{}
	for _, v := range values {
		if list, ok := v.(*types.List); ok {
			items = append(items, list.Items...)
		}
	}
	if len(items) == 0 {
		return types.Omit
	}
	return &types.List{Items: items}
}

func titleRule(name string, explicit types.Key, label types.Key) types.Binding {
	return types.Derive(name, []types.Key{explicit, label}, func(ctx types.Context) (types.Node, error) {
		title, err := ctx.Get(explicit)
		if err != nil {
			return nil, err
		}
		fallback, err := ctx.Get(label)
		if err != nil {
			return nil, err
		}
		return policies.PreferLiteral(title, fallback), nil
	})
}

// groupModeRule asks for side-by-side placement when a layer of the given
// mark draws more than one group.
func groupModeRule(name string, mark types.MarkKind) types.Binding {
	return types.Derive(name, []types.Key{KeyMark, KeyGroupBy}, func(ctx types.Context) (types.Node, error) {
		kind, _, err := stringAt(ctx, KeyMark)
		if err != nil {
			return nil, err
		}
		if types.MarkKind(kind) != mark {
			return types.Omit, nil
		}
		groups, err := columnsAt(ctx, KeyGroupBy)
		if err != nil {
			return nil, err
		}
		if len(groups) == 0 {
			return types.Omit, nil
		}
		return types.Scalar{Value: "group"}, nil
	})
}
