package ports

import "layerplot/internal/types"

// Group is one partition of a dataset: the rows sharing one combination of
// group column values. Labels holds those values rendered as strings, in
// group column order.
type Group struct {
	Labels []string
	Data   Dataset
}

// Dataset is an ordered table of named, typed columns. Implementations never
// mutate in place; every transforming method returns a new Dataset.
//
// Numeric columns read through Floats; temporal columns read through Floats
// as Unix seconds and through Strings as their original text; categorical
// columns only read through Strings.
type Dataset interface {
	Names() []string
	Len() int
	Has(name string) bool
	Type(name string) (types.FieldType, error)
	Floats(name string) ([]float64, error)
	Strings(name string) ([]string, error)
	// Values returns the column in plot-ready form: float64 (nil for
	// missing) for numeric columns and string otherwise.
	Values(name string) ([]any, error)

	GroupBy(names ...string) ([]Group, error)
	Select(names ...string) (Dataset, error)
	Drop(names ...string) Dataset
	WithFloats(name string, values []float64) (Dataset, error)
	WithStrings(name string, kind types.FieldType, values []string) (Dataset, error)
	Subset(rows []int) Dataset
	Concat(other Dataset) (Dataset, error)
	SortBy(name string) (Dataset, error)
	// New builds an empty-schema dataset of the same implementation.
	New(columns ...Column) (Dataset, error)
}

// Column is a standalone column used to assemble new datasets. Numeric
// columns fill Floats; the others fill Strings.
type Column struct {
	Name    string
	Type    types.FieldType
	Floats  []float64
	Strings []string
}

func (c Column) Len() int {
	if c.Type == types.FieldNumeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

type DatasetSourcePort interface {
	Load(path string) (Dataset, error)
}
