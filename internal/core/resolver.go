package core

import (
	"context"
	"fmt"

	"layerplot/internal/types"
)

const DefaultMaxDepth = 64

// Resolver turns a placeholder tree into a concrete one.
type Resolver struct {
	Cache *AssignmentCache
	// Strict rejects rule reads of keys missing from the rule's Deps.
	Strict   bool
	MaxDepth int
}

func NewResolver(cache *AssignmentCache) Resolver {
	return Resolver{Cache: cache, MaxDepth: DefaultMaxDepth}
}

// Scope opens a root scope over bindings.
func (r Resolver) Scope(ctx context.Context, bindings *types.Bindings) *Scope {
	cache := r.Cache
	if cache == nil {
		cache = NewAssignmentCache()
	}
	depth := r.MaxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	return newScope(&session{
		ctx:      ctx,
		cache:    cache,
		strict:   r.Strict,
		maxDepth: depth,
		active:   map[activeKey]bool{},
	}, bindings)
}

func (r Resolver) Resolve(ctx context.Context, tree types.Node, bindings *types.Bindings) (types.Node, error) {
	return r.Scope(ctx, bindings).Resolve(tree)
}

// prepare resolves the declared dependencies of root's rule, transitively and
// in post-order, before the rule itself runs. The traversal keeps its own
// stack; a dependency met again while still open is a cycle.
func (s *Scope) prepare(root types.Key) error {
	const (
		_ = iota
		open
		closed
	)
	state := map[types.Key]int{}
	stack := []depVisit{{key: root}}
	order := []types.Key{}
	depth := 0

	for len(stack) > 0 {
		top := len(stack) - 1
		v := stack[top]
		if v.expanded {
			stack = stack[:top]
			state[v.key] = closed
			order = append(order, v.key)
			depth--
			continue
		}
		if _, done := s.memo[v.key]; done || state[v.key] == closed {
			stack = stack[:top]
			state[v.key] = closed
			continue
		}
		stack[top].expanded = true
		state[v.key] = open
		depth++
		if depth > s.session.maxDepth {
			return types.UnresolvedDependencyError{
				Key:    v.key,
				Chain:  openChain(stack),
				Reason: fmt.Sprintf("dependency chain deeper than %d", s.session.maxDepth),
			}
		}

		binding, ok := s.bindings.Lookup(v.key)
		if !ok || binding.Kind != types.BindRule {
			continue
		}
		deps := binding.Rule.Deps
		for i := len(deps) - 1; i >= 0; i-- {
			dep := deps[i]
			switch state[dep] {
			case open:
				return types.UnresolvedDependencyError{
					Key:    dep,
					Rule:   binding.Rule.Name,
					Chain:  append(openChain(stack), dep),
					Reason: "dependency cycle",
				}
			case closed:
				continue
			}
			if _, done := s.memo[dep]; done {
				continue
			}
			stack = append(stack, depVisit{key: dep})
		}
	}

	for _, key := range order {
		if key == root {
			continue
		}
		if _, done := s.memo[key]; done {
			continue
		}
		binding, ok := s.bindings.Lookup(key)
		if !ok {
			continue
		}
		if _, err := s.evaluate(key, binding); err != nil {
			return err
		}
	}
	return nil
}

type depVisit struct {
	key      types.Key
	expanded bool
}

// openChain lists the expanded entries of the stack: the path from the root
// key to the one being expanded.
func openChain(stack []depVisit) []types.Key {
	chain := []types.Key{}
	for _, v := range stack {
		if v.expanded {
			chain = append(chain, v.key)
		}
	}
	return chain
}

// walkFrame is one open collection of the tree walk.
type walkFrame struct {
	scope   *Scope
	mapNode *types.Map
	list    *types.List
	next    int
	name    string
	entries []types.Entry
	items   []types.Node
	omitted bool
}

func isCollection(n types.Node) bool {
	switch v := n.(type) {
	case *types.Map:
		return v != nil
	case *types.List:
		return v != nil
	}
	return false
}

// walk resolves every placeholder under root, depth first, with an explicit
// stack of open collections.
func (s *Scope) walk(root types.Node) (types.Node, error) {
	if !isCollection(root) {
		return s.leaf(root)
	}
	stack := []*walkFrame{s.open(root)}
	for {
		top := stack[len(stack)-1]
		child, more, err := top.advance()
		if err != nil {
			return nil, err
		}
		if more {
			if isCollection(child) {
				stack = append(stack, top.scope.open(child))
				continue
			}
			value, err := top.scope.leaf(child)
			if err != nil {
				return nil, err
			}
			top.accept(value)
			continue
		}
		done := top.close()
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return done, nil
		}
		stack[len(stack)-1].accept(done)
	}
}

func (s *Scope) leaf(n types.Node) (types.Node, error) {
	switch v := n.(type) {
	case nil:
		return types.Omit, nil
	case types.Key:
		return s.value(v)
	default:
		return n, nil
	}
}

func (s *Scope) open(n types.Node) *walkFrame {
	switch v := n.(type) {
	case *types.Map:
		return &walkFrame{
			scope:   s.child(v.Defaults),
			mapNode: v,
			entries: make([]types.Entry, 0, len(v.Entries)),
		}
	default:
		l := v.(*types.List)
		return &walkFrame{
			scope: s.child(l.Defaults),
			list:  l,
			items: make([]types.Node, 0, len(l.Items)),
		}
	}
}

// advance yields the next child to resolve. Map entry names are resolved
// here; an entry whose name resolves to Omit is skipped.
func (f *walkFrame) advance() (types.Node, bool, error) {
	if f.list != nil {
		if f.next >= len(f.list.Items) {
			return nil, false, nil
		}
		item := f.list.Items[f.next]
		f.next++
		return item, true, nil
	}
	for f.next < len(f.mapNode.Entries) {
		entry := f.mapNode.Entries[f.next]
		f.next++
		name, err := f.scope.leaf(entry.Name)
		if err != nil {
			return nil, false, err
		}
		if types.IsOmit(name) {
			f.omitted = true
			continue
		}
		if isCollection(name) {
			return nil, false, fmt.Errorf("map entry name resolved to %T", name)
		}
		f.name = types.NameOf(name)
		return entry.Value, true, nil
	}
	return nil, false, nil
}

func (f *walkFrame) accept(value types.Node) {
	if types.IsOmit(value) {
		f.omitted = true
		return
	}
	if f.list == nil {
		f.entries = append(f.entries, types.Field(f.name, value))
		return
	}
	if nested, ok := value.(*types.List); ok && nested.Splice {
		f.items = append(f.items, nested.Items...)
		return
	}
	f.items = append(f.items, value)
}

// close builds the resolved collection. One emptied by omissions is itself
// omitted when the scope binds KeyDropEmpty to true.
func (f *walkFrame) close() types.Node {
	if f.list == nil {
		if len(f.entries) == 0 && f.omitted && f.scope.dropEmpty() {
			return types.Omit
		}
		return &types.Map{Entries: f.entries}
	}
	if len(f.items) == 0 && f.omitted && f.scope.dropEmpty() {
		return types.Omit
	}
	return &types.List{Items: f.items, Splice: f.list.Splice}
}
