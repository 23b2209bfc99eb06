package core

import (
	"fmt"
	"slices"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"layerplot/internal/ports"
	"layerplot/internal/types"
)

// Attrs is the loose form callers build layers and plots from. Values may be
// bindings, rules, tree nodes, datasets or plain Go values.
type Attrs map[types.Key]any

// bindingOf turns one attribute value into an explicit binding.
func bindingOf(v any) types.Binding {
	switch value := v.(type) {
	case types.Binding:
		return value.Explicit()
	case types.Rule:
		return types.Binding{Kind: types.BindRule, Rule: value}.Explicit()
	case ports.Dataset:
		return types.Literal(types.Opaque{Payload: value}).Explicit()
	default:
		return types.Literal(types.ValueOf(v)).Explicit()
	}
}

func (a Attrs) bindings() *types.Bindings {
	keys := make([]types.Key, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	b := types.NewBindings()
	for _, key := range keys {
		b.Put(key, bindingOf(a[key]))
	}
	return b
}

// Layer is a partial plot description: a set of bindings that will open the
// scope its traces resolve in.
type Layer struct {
	fields *types.Bindings
}

func NewLayer(attrs Attrs) Layer {
	return Layer{fields: attrs.bindings()}
}

func (l Layer) Fields() *types.Bindings {
	if l.fields == nil {
		return types.NewBindings()
	}
	return l.fields
}

func (l Layer) With(key types.Key, value any) Layer {
	return Layer{fields: l.Fields().With(key, bindingOf(value))}
}

// Merge combines two layers; other's fields win on conflict.
func (l Layer) Merge(other Layer) Layer {
	return Layer{fields: l.Fields().Merge(other.fields)}
}

func (l Layer) Equal(other Layer) bool {
	return l.Fields().Equal(other.Fields())
}

// Layers is an ordered collection of layers. Product and Sum make it a
// semiring: Sum concatenates, Product merges every pair.
type Layers []Layer

// Identity is the neutral element of Product.
func Identity() Layers {
	return Layers{Layer{}}
}

// Product merges every layer of a with every layer of b, a-major.
func Product(a Layers, b Layers) Layers {
	out := make(Layers, 0, len(a)*len(b))
	for _, left := range a {
		for _, right := range b {
			out = append(out, left.Merge(right))
		}
	}
	return out
}

func ProductAll(factors ...Layers) Layers {
	out := Identity()
	for _, factor := range factors {
		out = Product(out, factor)
	}
	return out
}

func Sum(terms ...Layers) Layers {
	out := Layers{}
	for _, term := range terms {
		out = append(out, term...)
	}
	return out
}

func (ls Layers) Equal(other Layers) bool {
	return slices.EqualFunc(ls, other, Layer.Equal)
}

func Data(ds ports.Dataset) Layers {
	return Layers{NewLayer(Attrs{KeyData: ds})}
}

func Mark(kind types.MarkKind) Layers {
	return Layers{NewLayer(Attrs{KeyMark: string(kind)})}
}

// Stat selects a transform. Params are its parameters, keyed as the
// library keys them (KeyBins, KeySpan, ...).
func Stat(kind types.StatKind, params Attrs) Layers {
	b := params.bindings().With(KeyStat, bindingOf(string(kind)))
	return Layers{Layer{fields: b}}
}

type aestheticKeys struct {
	mapped  types.Key
	literal types.Key
}

var aesthetics = map[types.Aesthetic]aestheticKeys{
	types.AesX:         {mapped: KeyX},
	types.AesY:         {mapped: KeyY},
	types.AesZ:         {mapped: KeyZ},
	types.AesX1:        {mapped: KeyX1},
	types.AesY1:        {mapped: KeyY1},
	types.AesText:      {mapped: KeyText, literal: KeyTextLiteral},
	types.AesGroup:     {mapped: KeyGroup},
	types.AesColor:     {mapped: KeyColor, literal: KeyMarkerColor},
	types.AesSize:      {mapped: KeySize, literal: KeyMarkerSize},
	types.AesSymbol:    {mapped: KeySymbol, literal: KeyMarkerSymbol},
	types.AesOpacity:   {literal: KeyOpacity},
	types.AesLineWidth: {literal: KeyLineWidth},
	types.AesLineDash:  {literal: KeyLineDash},
	types.AesName:      {literal: KeyName},
}

var positional = []types.Aesthetic{types.AesX, types.AesY, types.AesZ}

// Mapping binds aesthetics to columns. Positional columns fill x, y and z in
// that order.
func Mapping(columns []string, named map[types.Aesthetic]string) (Layers, error) {
	if len(columns) > len(positional) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("at most %d positional mappings, got %d", len(positional), len(columns)))
	}
	attrs := Attrs{}
	for i, column := range columns {
		attrs[aesthetics[positional[i]].mapped] = types.Symbol(column)
	}
	for aes, column := range named {
		keys, ok := aesthetics[aes]
		if !ok || keys.mapped == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("aesthetic %q cannot be mapped to a column", aes))
		}
		attrs[keys.mapped] = types.Symbol(column)
	}
	return Layers{NewLayer(attrs)}, nil
}

// Visual binds aesthetics to values. A Symbol value maps the aesthetic to
// that column; anything else is a literal.
func Visual(values map[types.Aesthetic]any) (Layers, error) {
	attrs := Attrs{}
	for aes, value := range values {
		keys, ok := aesthetics[aes]
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown aesthetic %q", aes))
		}
		_, isColumn := value.(types.Symbol)
		key := keys.literal
		if isColumn {
			key = keys.mapped
		}
		if key == "" && isColumn {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("aesthetic %q takes a literal value", aes))
		}
		if key == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("aesthetic %q takes a column, got %T", aes, value))
		}
		attrs[key] = value
	}
	return Layers{NewLayer(attrs)}, nil
}

// Facet adds partition columns to every layer.
func Facet(ls Layers, columns ...string) Layers {
	out := make(Layers, 0, len(ls))
	for _, layer := range ls {
		items := []types.Node{}
		if binding, ok := layer.Fields().Lookup(KeyFacet); ok && binding.Kind == types.BindLiteral {
			if list, ok := binding.Literal.(*types.List); ok {
				items = append(items, list.Items...)
			}
		}
		for _, column := range columns {
			items = append(items, types.Symbol(column))
		}
		out = append(out, layer.With(KeyFacet, &types.List{Items: items}))
	}
	return out
}
