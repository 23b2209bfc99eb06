package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// MissingColumnError reports a column a transform or encoding requires but
// the dataset lacks. Role names the aesthetic or parameter that referenced it.
type MissingColumnError struct {
	Role   string
	Column string
}

func (e MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q for %s", e.Column, e.Role)
}

func (e MissingColumnError) Code() errbuilder.ErrCode {
	return errbuilder.CodeInvalidArgument
}

// InvalidRangeError reports input that leaves a computation without a usable
// domain: an empty or degenerate range, or an unsolvable fit.
type InvalidRangeError struct {
	Op     string
	Reason string
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("%s: invalid range: %s", e.Op, e.Reason)
}

func (e InvalidRangeError) Code() errbuilder.ErrCode {
	return errbuilder.CodeFailedPrecondition
}

type UnknownBackendError struct {
	Backend string
}

func (e UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend %q", e.Backend)
}

func (e UnknownBackendError) Code() errbuilder.ErrCode {
	return errbuilder.CodeInvalidArgument
}

// UnresolvedDependencyError reports a placeholder that cannot be resolved: a
// dependency cycle, a chain deeper than the resolver allows, or an undeclared
// read in strict mode. Chain lists the keys being resolved, outermost first.
type UnresolvedDependencyError struct {
	Key    Key
	Rule   string
	Chain  []Key
	Reason string
}

func (e UnresolvedDependencyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unresolved dependency %q", string(e.Key))
	if e.Rule != "" {
		fmt.Fprintf(&b, " in rule %s", e.Rule)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if len(e.Chain) > 0 {
		names := make([]string, 0, len(e.Chain))
		for _, key := range e.Chain {
			names = append(names, string(key))
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(names, " -> "))
	}
	return b.String()
}

func (e UnresolvedDependencyError) Code() errbuilder.ErrCode {
	return errbuilder.CodeFailedPrecondition
}
