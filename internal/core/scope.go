package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"layerplot/internal/types"
)

// Scope is one resolution context: the effective bindings at some point of
// the tree plus a memo of every key already resolved there.
type Scope struct {
	session  *session
	bindings *types.Bindings
	memo     map[types.Key]types.Node
	children map[*types.Bindings]*Scope
}

// session is the state shared by every scope of one resolution.
type session struct {
	ctx      context.Context
	cache    *AssignmentCache
	strict   bool
	maxDepth int
	active   map[activeKey]bool
	chain    []types.Key
}

type activeKey struct {
	scope *Scope
	key   types.Key
}

func newScope(sess *session, bindings *types.Bindings) *Scope {
	if bindings == nil {
		bindings = types.NewBindings()
	}
	return &Scope{
		session:  sess,
		bindings: bindings,
		memo:     map[types.Key]types.Node{},
		children: map[*types.Bindings]*Scope{},
	}
}

func (s *Scope) Context() context.Context {
	return s.session.ctx
}

func (s *Scope) Get(key types.Key) (types.Node, error) {
	return s.value(key)
}

func (s *Scope) Resolve(n types.Node) (types.Node, error) {
	return s.walk(n)
}

func (s *Scope) Child(bindings *types.Bindings) types.Context {
	return s.child(bindings)
}

func (s *Scope) Slot(namespace string, raw string, size int) int {
	return s.session.cache.Slot(namespace, raw, size)
}

// child returns the scope opened by node-local bindings. The same bindings
// table always yields the same child, so its memo is shared.
func (s *Scope) child(local *types.Bindings) *Scope {
	if local.Len() == 0 {
		return s
	}
	if existing, ok := s.children[local]; ok {
		return existing
	}
	c := newScope(s.session, s.bindings.Inherit(local))
	s.children[local] = c
	return c
}

// value resolves one key. An unbound key stands for the column of the same
// name.
func (s *Scope) value(key types.Key) (types.Node, error) {
	if v, ok := s.memo[key]; ok {
		return v, nil
	}
	binding, ok := s.bindings.Lookup(key)
	if !ok {
		return types.Symbol(key), nil
	}
	if binding.Kind == types.BindRule {
		if err := s.prepare(key); err != nil {
			return nil, err
		}
	}
	return s.evaluate(key, binding)
}

func (s *Scope) evaluate(key types.Key, binding types.Binding) (types.Node, error) {
	if v, ok := s.memo[key]; ok {
		return v, nil
	}
	sess := s.session
	marker := activeKey{scope: s, key: key}
	if sess.active[marker] {
		return nil, types.UnresolvedDependencyError{
			Key:    key,
			Chain:  append(slices.Clone(sess.chain), key),
			Reason: "dependency cycle",
		}
	}
	if len(sess.chain) >= sess.maxDepth {
		return nil, types.UnresolvedDependencyError{
			Key:    key,
			Chain:  append(slices.Clone(sess.chain), key),
			Reason: fmt.Sprintf("resolution deeper than %d", sess.maxDepth),
		}
	}
	sess.active[marker] = true
	sess.chain = append(sess.chain, key)
	defer func() {
		delete(sess.active, marker)
		sess.chain = sess.chain[:len(sess.chain)-1]
	}()

	var raw types.Node
	switch binding.Kind {
	case types.BindRule:
		out, err := binding.Rule.Fn(ruleContext{scope: s, rule: binding.Rule})
		if err != nil {
			return nil, err
		}
		log.Ctx(sess.ctx).Trace().Str("key", string(key)).Str("rule", binding.Rule.Name).Msg("rule evaluated")
		raw = out
	default:
		raw = binding.Literal
	}
	if raw == nil {
		raw = types.Omit
	}
	// A key whose value is itself is a leaf: it names the column of the
	// same name.
	if self, ok := raw.(types.Key); ok && self == key {
		s.memo[key] = types.Symbol(key)
		return types.Symbol(key), nil
	}

	resolved, err := s.walk(raw)
	if err != nil {
		return nil, err
	}
	s.memo[key] = resolved
	return resolved, nil
}

func (s *Scope) dropEmpty() bool {
	v, err := s.value(KeyDropEmpty)
	if err != nil {
		return false
	}
	scalar, ok := v.(types.Scalar)
	if !ok {
		return false
	}
	flag, ok := scalar.Value.(bool)
	return ok && flag
}

// ruleContext is the view a rule body gets of the scope it runs in. Reads of
// keys the rule did not declare are lazy: allowed and logged, or rejected in
// strict mode.
type ruleContext struct {
	scope *Scope
	rule  types.Rule
}

func (r ruleContext) Context() context.Context {
	return r.scope.session.ctx
}

func (r ruleContext) Get(key types.Key) (types.Node, error) {
	if !slices.Contains(r.rule.Deps, key) {
		if r.scope.session.strict {
			return nil, types.UnresolvedDependencyError{
				Key:    key,
				Rule:   r.rule.Name,
				Chain:  slices.Clone(r.scope.session.chain),
				Reason: "read of undeclared dependency",
			}
		}
		log.Ctx(r.scope.session.ctx).Debug().
			Str("rule", r.rule.Name).
			Str("key", string(key)).
			Msg("undeclared dependency resolved lazily")
	}
	return r.scope.value(key)
}

func (r ruleContext) Resolve(n types.Node) (types.Node, error) {
	return r.scope.walk(n)
}

func (r ruleContext) Child(bindings *types.Bindings) types.Context {
	return r.scope.child(bindings)
}

func (r ruleContext) Slot(namespace string, raw string, size int) int {
	return r.scope.Slot(namespace, raw, size)
}

var _ types.Context = (*Scope)(nil)
var _ types.Context = ruleContext{}
