package types

import (
	"fmt"
	"sort"
)

// Node is one position of a plot tree. The set of node kinds is closed.
type Node interface {
	node()
}

// Key is a placeholder. It is resolved against the bindings of the scope it
// appears in and never survives into a resolved tree.
type Key string

// Symbol is a literal column reference. Symbols are leaf values and are never
// looked up.
type Symbol string

// Scalar holds a literal string, number, bool or nil.
type Scalar struct {
	Value any
}

// Opaque carries an external payload (a dataset, a column vector, a matrix)
// that the resolver substitutes verbatim without walking it.
type Opaque struct {
	Payload any
}

type Entry struct {
	Name  Node
	Value Node
}

// Map is an ordered mapping. Defaults, when set, open a child scope for the
// entries of the map.
type Map struct {
	Entries  []Entry
	Defaults *Bindings
}

// List is an ordered sequence. A Splice list placed inside another list is
// inlined into it during resolution.
type List struct {
	Items    []Node
	Defaults *Bindings
	Splice   bool
}

type omitted struct{}

// Omit removes the map entry or list item it resolves into.
var Omit Node = omitted{}

func (Key) node()     {}
func (Symbol) node()  {}
func (Scalar) node()  {}
func (Opaque) node()  {}
func (*Map) node()    {}
func (*List) node()   {}
func (omitted) node() {}

func IsOmit(n Node) bool {
	_, ok := n.(omitted)
	return ok
}

func Field(name string, value Node) Entry {
	return Entry{Name: Scalar{Value: name}, Value: value}
}

func NewMap(entries ...Entry) *Map {
	return &Map{Entries: entries}
}

func NewList(items ...Node) *List {
	return &List{Items: items}
}

// Get returns the value of the first entry whose name is the given string.
func (m *Map) Get(name string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	for _, entry := range m.Entries {
		if NameOf(entry.Name) == name {
			return entry.Value, true
		}
	}
	return nil, false
}

func (m *Map) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.Entries))
	for _, entry := range m.Entries {
		names = append(names, NameOf(entry.Name))
	}
	return names
}

// NameOf renders a map entry name as a string.
func NameOf(n Node) string {
	switch v := n.(type) {
	case Scalar:
		if s, ok := v.Value.(string); ok {
			return s
		}
		if v.Value != nil {
			return fmt.Sprint(v.Value)
		}
	case Symbol:
		return string(v)
	case Key:
		return string(v)
	}
	return ""
}

// ValueOf converts plain Go values into tree nodes. Nodes are returned
// unchanged; slices of numbers become opaque column vectors; string slices and
// generic slices become lists; string-keyed maps become maps with sorted names.
func ValueOf(v any) Node {
	switch value := v.(type) {
	case nil:
		return Scalar{}
	case Node:
		return value
	case []float64:
		return Opaque{Payload: value}
	case []string:
		items := make([]Node, 0, len(value))
		for _, item := range value {
			items = append(items, Scalar{Value: item})
		}
		return &List{Items: items}
	case []Symbol:
		items := make([]Node, 0, len(value))
		for _, item := range value {
			items = append(items, item)
		}
		return &List{Items: items}
	case []any:
		items := make([]Node, 0, len(value))
		for _, item := range value {
			items = append(items, ValueOf(item))
		}
		return &List{Items: items}
	case map[string]any:
		names := make([]string, 0, len(value))
		for name := range value {
			names = append(names, name)
		}
		sort.Strings(names)
		out := &Map{Entries: make([]Entry, 0, len(names))}
		for _, name := range names {
			out.Entries = append(out.Entries, Field(name, ValueOf(value[name])))
		}
		return out
	case map[string]string:
		names := make([]string, 0, len(value))
		for name := range value {
			names = append(names, name)
		}
		sort.Strings(names)
		out := &Map{Entries: make([]Entry, 0, len(names))}
		for _, name := range names {
			out.Entries = append(out.Entries, Field(name, Scalar{Value: value[name]}))
		}
		return out
	default:
		return Scalar{Value: v}
	}
}
