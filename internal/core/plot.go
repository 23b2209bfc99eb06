package core

import (
	"layerplot/internal/ports"
	"layerplot/internal/types"
)

// Plot is a base scope (data and plot-wide overrides) plus an ordered list of
// layers. Plots are values: every builder method returns a new one.
type Plot struct {
	overrides *types.Bindings
	layers    Layers
	err       error
}

// Base starts a plot. Source is a dataset, another plot whose overrides and
// layers are kept, or nil.
func Base(source any, overrides Attrs) Plot {
	p := Plot{overrides: types.NewBindings()}
	switch src := source.(type) {
	case Plot:
		p = src
		p.overrides = src.Overrides()
	case ports.Dataset:
		p.overrides.Put(KeyData, bindingOf(src))
	}
	p.overrides = p.overrides.Merge(overrides.bindings())
	return p
}

func (p Plot) Overrides() *types.Bindings {
	if p.overrides == nil {
		return types.NewBindings()
	}
	return p.overrides
}

func (p Plot) Layers() Layers {
	return p.layers
}

// Err reports the first invalid layer kind passed to Layer.
func (p Plot) Err() error {
	return p.err
}

// Layer appends one layer of the given mark or stat kind.
func (p Plot) Layer(kind string, overrides Attrs) Plot {
	mark, stat, err := LayerKind(kind)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return p
	}
	layer := NewLayer(overrides)
	if mark != "" {
		layer = layer.With(KeyMark, string(mark))
	} else {
		layer = layer.With(KeyStat, string(stat))
	}
	return p.Add(Layers{layer})
}

// Add appends layers built with the algebra.
func (p Plot) Add(ls Layers) Plot {
	p.layers = append(append(Layers{}, p.layers...), ls...)
	return p
}

func (p Plot) Point(overrides Attrs) Plot   { return p.Layer(string(types.MarkPoint), overrides) }
func (p Plot) Line(overrides Attrs) Plot    { return p.Layer(string(types.MarkLine), overrides) }
func (p Plot) Bar(overrides Attrs) Plot     { return p.Layer(string(types.MarkBar), overrides) }
func (p Plot) Box(overrides Attrs) Plot     { return p.Layer(string(types.MarkBox), overrides) }
func (p Plot) Violin(overrides Attrs) Plot  { return p.Layer(string(types.MarkViolin), overrides) }
func (p Plot) Segment(overrides Attrs) Plot { return p.Layer(string(types.MarkSegment), overrides) }
func (p Plot) Text(overrides Attrs) Plot    { return p.Layer(string(types.MarkText), overrides) }
func (p Plot) Heatmap(overrides Attrs) Plot { return p.Layer(string(types.MarkHeatmap), overrides) }
func (p Plot) Surface(overrides Attrs) Plot { return p.Layer(string(types.MarkSurface), overrides) }

func (p Plot) Smooth(overrides Attrs) Plot    { return p.Layer(string(types.StatSmooth), overrides) }
func (p Plot) Histogram(overrides Attrs) Plot { return p.Layer(string(types.StatHistogram), overrides) }
func (p Plot) Histogram2D(overrides Attrs) Plot {
	return p.Layer(string(types.StatHistogram2D), overrides)
}
func (p Plot) Density(overrides Attrs) Plot { return p.Layer(string(types.StatDensity), overrides) }
func (p Plot) Correlation(overrides Attrs) Plot {
	return p.Layer(string(types.StatCorrelation), overrides)
}

// layerScope is the node-local bindings of one layer: the defaults its mark
// and stat imply, overridden by the layer's own fields.
func (p Plot) layerScope(layer Layer) *types.Bindings {
	fields := layer.Fields()
	stat := literalString(KeyStat, fields, p.Overrides())
	mark := literalString(KeyMark, fields, p.Overrides())
	if mark == "" {
		mark = string(types.MarkPoint)
		if m, ok := statMarks[types.StatKind(stat)]; ok {
			mark = string(m)
		}
	}
	return MarkDefaults(types.MarkKind(mark)).
		Merge(StatDefaults(types.StatKind(stat))).
		Merge(fields)
}

// literalString reads a string literal from the first table that binds key.
func literalString(key types.Key, tables ...*types.Bindings) string {
	for _, t := range tables {
		binding, ok := t.Lookup(key)
		if !ok || binding.Kind != types.BindLiteral {
			continue
		}
		if scalar, ok := binding.Literal.(types.Scalar); ok {
			if s, ok := scalar.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

// Tree builds the placeholder tree of the plot: a figure map whose data list
// holds one spliced traces placeholder per layer.
func (p Plot) Tree() *types.Map {
	scopes := make([]*types.Bindings, 0, len(p.layers))
	data := make([]types.Node, 0, len(p.layers))
	for _, layer := range p.layers {
		local := p.layerScope(layer)
		scopes = append(scopes, local)
		data = append(data, &types.List{
			Items:    []types.Node{KeyTraces},
			Defaults: local,
			Splice:   true,
		})
	}
	root := p.Overrides().With(KeyLayers, types.Literal(types.Opaque{Payload: scopes}).Explicit())
	return &types.Map{
		Defaults: root,
		Entries: []types.Entry{
			types.Field("data", &types.List{Items: data}),
			types.Field("layout", KeyLayout),
		},
	}
}
