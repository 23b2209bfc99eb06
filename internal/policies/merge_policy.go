package policies

import "layerplot/internal/types"

// LastNonNull returns the last value that is neither nil, omitted nor an
// empty string. Axis titles merge this way across layers.
func LastNonNull(values []types.Node) types.Node {
	for i := len(values) - 1; i >= 0; i-- {
		if Present(values[i]) {
			return values[i]
		}
	}
	return types.Omit
}

// FirstNonNull is LastNonNull scanning forward. Box and violin modes merge
// this way across layers.
func FirstNonNull(values []types.Node) types.Node {
	for _, value := range values {
		if Present(value) {
			return value
		}
	}
	return types.Omit
}

// PreferLiteral picks a literal visual override over a column mapping.
func PreferLiteral(literal types.Node, mapped types.Node) types.Node {
	if Present(literal) {
		return literal
	}
	if mapped == nil {
		return types.Omit
	}
	return mapped
}

// Present reports whether n carries a value: not nil, not omitted, not an
// empty string.
func Present(n types.Node) bool {
	if n == nil || types.IsOmit(n) {
		return false
	}
	if scalar, ok := n.(types.Scalar); ok {
		if scalar.Value == nil {
			return false
		}
		if s, ok := scalar.Value.(string); ok && s == "" {
			return false
		}
	}
	return true
}
