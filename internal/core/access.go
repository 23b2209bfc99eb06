package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"layerplot/internal/ports"
	"layerplot/internal/stats"
	"layerplot/internal/types"
)

func typeError(key types.Key, want string, got types.Node) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s holds %s, want %s", key, describe(got), want))
}

func describe(n types.Node) string {
	switch v := n.(type) {
	case types.Scalar:
		return fmt.Sprintf("%T %v", v.Value, v.Value)
	case types.Opaque:
		return fmt.Sprintf("opaque %T", v.Payload)
	default:
		return fmt.Sprintf("%T", n)
	}
}

// datasetAt returns nil when the key is omitted.
func datasetAt(ctx types.Context, key types.Key) (ports.Dataset, error) {
	v, err := ctx.Get(key)
	if err != nil {
		return nil, err
	}
	if types.IsOmit(v) {
		return nil, nil
	}
	if o, ok := v.(types.Opaque); ok {
		if ds, ok := o.Payload.(ports.Dataset); ok {
			return ds, nil
		}
	}
	return nil, typeError(key, "a dataset", v)
}

// columnAt returns the column a mapping key names, or "" when the mapping is
// omitted.
func columnAt(ctx types.Context, key types.Key) (string, error) {
	v, err := ctx.Get(key)
	if err != nil {
		return "", err
	}
	if name, ok := columnName(v); ok {
		return name, nil
	}
	return "", typeError(key, "a column", v)
}

// columnName accepts only symbols as column references. A string scalar is a
// literal, never a column.
func columnName(n types.Node) (string, bool) {
	switch v := n.(type) {
	case types.Symbol:
		return string(v), true
	case types.Scalar:
		return "", v.Value == nil
	}
	return "", types.IsOmit(n)
}

func columnsAt(ctx types.Context, key types.Key) ([]string, error) {
	v, err := ctx.Get(key)
	if err != nil {
		return nil, err
	}
	if list, ok := v.(*types.List); ok {
		names := make([]string, 0, len(list.Items))
		for _, item := range list.Items {
			name, ok := columnName(item)
			if !ok {
				return nil, typeError(key, "a list of columns", v)
			}
			if name != "" {
				names = append(names, name)
			}
		}
		return names, nil
	}
	name, ok := columnName(v)
	if !ok {
		return nil, typeError(key, "a list of columns", v)
	}
	if name == "" {
		return nil, nil
	}
	return []string{name}, nil
}

func numberAt(ctx types.Context, key types.Key) (float64, bool, error) {
	v, err := ctx.Get(key)
	if err != nil {
		return 0, false, err
	}
	if types.IsOmit(v) {
		return 0, false, nil
	}
	if scalar, ok := v.(types.Scalar); ok {
		if f, ok := toFloat(scalar.Value); ok {
			return f, true, nil
		}
		if scalar.Value == nil {
			return 0, false, nil
		}
	}
	return 0, false, typeError(key, "a number", v)
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func intAt(ctx types.Context, key types.Key) (int, bool, error) {
	f, ok, err := numberAt(ctx, key)
	return int(f), ok, err
}

func stringAt(ctx types.Context, key types.Key) (string, bool, error) {
	v, err := ctx.Get(key)
	if err != nil {
		return "", false, err
	}
	switch n := v.(type) {
	case types.Scalar:
		if n.Value == nil {
			return "", false, nil
		}
		if s, ok := n.Value.(string); ok {
			return s, true, nil
		}
	case types.Symbol:
		return string(n), true, nil
	}
	if types.IsOmit(v) {
		return "", false, nil
	}
	return "", false, typeError(key, "a string", v)
}

func payloadAt[T any](ctx types.Context, key types.Key) (T, error) {
	var zero T
	v, err := ctx.Get(key)
	if err != nil {
		return zero, err
	}
	if o, ok := v.(types.Opaque); ok {
		if payload, ok := o.Payload.(T); ok {
			return payload, nil
		}
	}
	return zero, typeError(key, fmt.Sprintf("%T", zero), v)
}

// termsAt reads design-matrix terms held as a map of name to expression.
func termsAt(ctx types.Context, key types.Key) ([]stats.Term, error) {
	v, err := ctx.Get(key)
	if err != nil {
		return nil, err
	}
	if types.IsOmit(v) {
		return nil, nil
	}
	m, ok := v.(*types.Map)
	if !ok {
		return nil, typeError(key, "a map of terms", v)
	}
	terms := make([]stats.Term, 0, len(m.Entries))
	for _, entry := range m.Entries {
		scalar, _ := entry.Value.(types.Scalar)
		expr, ok := scalar.Value.(string)
		if !ok || expr == "" {
			return nil, typeError(key, "a map of terms", v)
		}
		terms = append(terms, stats.Term{Name: types.NameOf(entry.Name), Expr: expr})
	}
	return terms, nil
}
