package types

import (
	"context"
	"reflect"
	"slices"
)

type BindingKind int

const (
	BindLiteral BindingKind = iota
	BindRule
)

// Origin records who supplied a binding. Explicit bindings always beat
// inherited ones; default bindings only beat inherited defaults.
type Origin int

const (
	OriginDefault Origin = iota
	OriginExplicit
)

// Context is what a rule sees while it runs: the full resolution scope it was
// invoked in.
type Context interface {
	Context() context.Context
	Get(key Key) (Node, error)
	Resolve(n Node) (Node, error)
	Child(bindings *Bindings) Context
	// Slot returns the stable palette slot of raw within namespace, in
	// [0, size).
	Slot(namespace string, raw string, size int) int
}

type RuleFunc func(ctx Context) (Node, error)

// Rule derives a value from other keys. Deps lists every key the rule reads;
// the resolver resolves them before Fn runs.
type Rule struct {
	Name string
	Deps []Key
	Fn   RuleFunc
}

type Binding struct {
	Kind    BindingKind
	Origin  Origin
	Literal Node
	Rule    Rule
}

func Literal(n Node) Binding {
	return Binding{Kind: BindLiteral, Literal: n}
}

func Derive(name string, deps []Key, fn RuleFunc) Binding {
	return Binding{Kind: BindRule, Rule: Rule{Name: name, Deps: deps, Fn: fn}}
}

func (b Binding) Explicit() Binding {
	b.Origin = OriginExplicit
	return b
}

func (b Binding) Default() Binding {
	b.Origin = OriginDefault
	return b
}

func (b Binding) Equal(other Binding) bool {
	if b.Kind != other.Kind || b.Origin != other.Origin {
		return false
	}
	if b.Kind == BindRule {
		return b.Rule.Name == other.Rule.Name && slices.Equal(b.Rule.Deps, other.Rule.Deps)
	}
	return reflect.DeepEqual(b.Literal, other.Literal)
}

// Bindings is an ordered key to binding table. Values are treated as
// immutable once shared: With and Merge return new tables.
type Bindings struct {
	keys  []Key
	table map[Key]Binding
}

func NewBindings() *Bindings {
	return &Bindings{table: map[Key]Binding{}}
}

func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

func (b *Bindings) Keys() []Key {
	if b == nil {
		return nil
	}
	return slices.Clone(b.keys)
}

func (b *Bindings) Lookup(key Key) (Binding, bool) {
	if b == nil {
		return Binding{}, false
	}
	binding, ok := b.table[key]
	return binding, ok
}

// Put stores a binding in place. It is meant for tables still under
// construction.
func (b *Bindings) Put(key Key, binding Binding) *Bindings {
	if _, ok := b.table[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.table[key] = binding
	return b
}

func (b *Bindings) Clone() *Bindings {
	out := NewBindings()
	if b == nil {
		return out
	}
	out.keys = slices.Clone(b.keys)
	for key, binding := range b.table {
		out.table[key] = binding
	}
	return out
}

func (b *Bindings) With(key Key, binding Binding) *Bindings {
	return b.Clone().Put(key, binding)
}

// Merge returns a table holding b's bindings overridden by other's. Key order
// is first appearance, left to right.
func (b *Bindings) Merge(other *Bindings) *Bindings {
	out := b.Clone()
	if other == nil {
		return out
	}
	for _, key := range other.keys {
		out.Put(key, other.table[key])
	}
	return out
}

// Inherit returns the effective table of a child scope: parent bindings
// overridden by local ones, except that a local default never replaces an
// inherited explicit binding.
func (b *Bindings) Inherit(local *Bindings) *Bindings {
	out := b.Clone()
	if local == nil {
		return out
	}
	for _, key := range local.keys {
		binding := local.table[key]
		if inherited, ok := out.table[key]; ok && inherited.Origin == OriginExplicit && binding.Origin == OriginDefault {
			continue
		}
		out.Put(key, binding)
	}
	return out
}

func (b *Bindings) Equal(other *Bindings) bool {
	if b.Len() != other.Len() {
		return false
	}
	if b.Len() == 0 {
		return true
	}
	if !slices.Equal(b.keys, other.keys) {
		return false
	}
	for _, key := range b.keys {
		if !b.table[key].Equal(other.table[key]) {
			return false
		}
	}
	return true
}
