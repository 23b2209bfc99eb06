package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"layerplot/internal/policies"
	"layerplot/internal/ports"
	"layerplot/internal/types"
)

// Renderer resolves plots into backend figures. Category slots are stable
// within one figure and independent across figures: a nil Cache gets a fresh
// cache per render, a set one is reset at the start of every render and must
// not be shared by concurrent renders.
type Renderer struct {
	Cache    *AssignmentCache
	Policy   ports.EncodingPolicyPort
	Strict   bool
	MaxDepth int
}

func NewRenderer(policy ports.EncodingPolicyPort) Renderer {
	return Renderer{
		Policy:   policy,
		MaxDepth: DefaultMaxDepth,
	}
}

func (r Renderer) Render(ctx context.Context, plot Plot) (types.Figure, error) {
	if err := plot.Err(); err != nil {
		return types.Figure{}, err
	}
	cache := r.Cache
	if cache == nil {
		cache = NewAssignmentCache()
	}
	cache.Reset()
	policy := r.Policy
	if policy == nil {
		policy = policies.NewEncodingPolicy()
	}

	tree := plot.Tree()
	resolver := Resolver{Cache: cache, Strict: r.Strict, MaxDepth: r.MaxDepth}
	root := resolver.Scope(ctx, StandardLibrary(policy))

	backend, _, err := stringAt(root.child(tree.Defaults), KeyBackend)
	if err != nil {
		return types.Figure{}, err
	}
	if backend != types.BackendPlotly {
		return types.Figure{}, types.UnknownBackendError{Backend: backend}
	}

	resolved, err := root.Resolve(tree)
	if err != nil {
		return types.Figure{}, err
	}
	figure, err := types.FigureFromNode(resolved)
	if err != nil {
		return types.Figure{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("resolved plot is not a figure").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().
		Int("layers", len(plot.Layers())).
		Int("traces", len(figure.Data)).
		Msg("plot rendered")
	return figure, nil
}

// Resolve renders a plot with the default encoding policy.
func Resolve(ctx context.Context, plot Plot) (types.Figure, error) {
	return NewRenderer(policies.NewEncodingPolicy()).Render(ctx, plot)
}
