// Package stats holds the statistical transforms a layer can apply to its
// data before it is drawn. Every transform is a pure function from one
// dataset to a new one and checks the columns it needs before computing
// anything.
package stats

import (
	"math"

	"layerplot/internal/ports"
	"layerplot/internal/types"
)

// requireColumns fails with a MissingColumnError for the first named column
// the dataset lacks. Empty names are skipped.
func requireColumns(ds ports.Dataset, role string, names ...string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		if !ds.Has(name) {
			return types.MissingColumnError{Role: role, Column: name}
		}
	}
	return nil
}

// grouped runs fn once per partition of ds and concatenates the results in
// partition order, each tagged with its partition's group columns.
func grouped(ds ports.Dataset, groupBy []string, fn func(part ports.Dataset) (ports.Dataset, error)) (ports.Dataset, error) {
	if len(groupBy) == 0 {
		return fn(ds)
	}
	groups, err := ds.GroupBy(groupBy...)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		out, err := fn(ds)
		if err != nil {
			return nil, err
		}
		return tag(out, ds, groupBy)
	}
	var result ports.Dataset
	for _, group := range groups {
		out, err := fn(group.Data)
		if err != nil {
			return nil, err
		}
		tagged, err := tag(out, group.Data, groupBy)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = tagged
			continue
		}
		result, err = result.Concat(tagged)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// tag prepends the group columns of part, repeated for every row of out.
func tag(out ports.Dataset, part ports.Dataset, groupBy []string) (ports.Dataset, error) {
	rows := out.Len()
	columns := make([]ports.Column, 0, len(groupBy)+len(out.Names()))
	for _, name := range groupBy {
		if out.Has(name) {
			continue
		}
		column, err := repeatFirst(part, name, rows)
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	for _, name := range out.Names() {
		column, err := columnOf(out, name)
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return out.New(columns...)
}

func repeatFirst(part ports.Dataset, name string, rows int) (ports.Column, error) {
	kind, err := part.Type(name)
	if err != nil {
		return ports.Column{}, err
	}
	column := ports.Column{Name: name, Type: kind}
	if kind == types.FieldNumeric {
		values, err := part.Floats(name)
		if err != nil {
			return ports.Column{}, err
		}
		value := math.NaN()
		if len(values) > 0 {
			value = values[0]
		}
		column.Floats = make([]float64, rows)
		for i := range column.Floats {
			column.Floats[i] = value
		}
		return column, nil
	}
	values, err := part.Strings(name)
	if err != nil {
		return ports.Column{}, err
	}
	value := ""
	if len(values) > 0 {
		value = values[0]
	}
	column.Strings = make([]string, rows)
	for i := range column.Strings {
		column.Strings[i] = value
	}
	return column, nil
}

func columnOf(ds ports.Dataset, name string) (ports.Column, error) {
	kind, err := ds.Type(name)
	if err != nil {
		return ports.Column{}, err
	}
	column := ports.Column{Name: name, Type: kind}
	if kind == types.FieldNumeric {
		column.Floats, err = ds.Floats(name)
	} else {
		column.Strings, err = ds.Strings(name)
	}
	return column, err
}

func numeric(name string, values []float64) ports.Column {
	return ports.Column{Name: name, Type: types.FieldNumeric, Floats: values}
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
