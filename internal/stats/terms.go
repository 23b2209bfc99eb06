package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"layerplot/internal/ports"
)

// Term is one named column of a design matrix, computed from an expression
// over dataset columns.
type Term struct {
	Name string
	Expr string
}

type termFactor struct {
	column   string
	fn       func(float64) float64
	exponent float64
}

// parseTerm accepts products of factors separated by '*', where a factor is
// a column name, optionally wrapped in log, exp or sqrt, optionally raised to
// a power: x, x^2, log(x), sqrt(x)^3.
func parseTerm(expr string) ([]termFactor, error) {
	parts := strings.Split(expr, "*")
	factors := make([]termFactor, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, invalidTerm(expr, "empty factor")
		}
		factor := termFactor{exponent: 1}
		if caret := strings.LastIndexByte(part, '^'); caret > strings.LastIndexByte(part, ')') {
			exponent, err := strconv.ParseFloat(strings.TrimSpace(part[caret+1:]), 64)
			if err != nil {
				return nil, invalidTerm(expr, fmt.Sprintf("bad exponent in %q", part))
			}
			factor.exponent = exponent
			part = strings.TrimSpace(part[:caret])
		}
		if open := strings.IndexByte(part, '('); open > 0 && strings.HasSuffix(part, ")") {
			switch strings.TrimSpace(part[:open]) {
			case "log":
				factor.fn = math.Log
			case "exp":
				factor.fn = math.Exp
			case "sqrt":
				factor.fn = math.Sqrt
			default:
				return nil, invalidTerm(expr, fmt.Sprintf("unknown function %q", part[:open]))
			}
			part = strings.TrimSpace(part[open+1 : len(part)-1])
		}
		if part == "" || strings.ContainsAny(part, "()^") {
			return nil, invalidTerm(expr, fmt.Sprintf("bad factor %q", part))
		}
		factor.column = part
		factors = append(factors, factor)
	}
	return factors, nil
}

func invalidTerm(expr string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid term %q: %s", expr, reason))
}

// evaluateTerm computes the term for every row of ds.
func evaluateTerm(ds ports.Dataset, factors []termFactor) ([]float64, error) {
	out := make([]float64, ds.Len())
	for i := range out {
		out[i] = 1
	}
	for _, factor := range factors {
		values, err := ds.Floats(factor.column)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			if factor.fn != nil {
				v = factor.fn(v)
			}
			if factor.exponent != 1 {
				v = math.Pow(v, factor.exponent)
			}
			out[i] *= v
		}
	}
	return out, nil
}

func termColumns(factors []termFactor) []string {
	names := make([]string, 0, len(factors))
	for _, factor := range factors {
		names = append(names, factor.column)
	}
	return names
}
