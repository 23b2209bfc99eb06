package adapters

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"layerplot/internal/ports"
	"layerplot/internal/types"
)

// Frame is a ports.Dataset backed by a gota DataFrame. Gota has no temporal
// type, so temporal columns are string series tracked by name.
type Frame struct {
	df       dataframe.DataFrame
	temporal map[string]bool
}

func NewFrame(columns ...ports.Column) (Frame, error) {
	if len(columns) == 0 {
		return Frame{}, nil
	}
	seen := map[string]bool{}
	list := make([]series.Series, 0, len(columns))
	temporal := map[string]bool{}
	for _, column := range columns {
		if seen[column.Name] {
			return Frame{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate column %q", column.Name))
		}
		seen[column.Name] = true
		list = append(list, toSeries(column))
		if column.Type == types.FieldTemporal {
			temporal[column.Name] = true
		}
	}
	df := dataframe.New(list...)
	if df.Err != nil {
		return Frame{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to build dataset").
			WithCause(df.Err)
	}
	return Frame{df: df, temporal: temporal}, nil
}

// FrameFromDataFrame wraps df, classifying string columns whose values all
// parse as times as temporal.
func FrameFromDataFrame(df dataframe.DataFrame) (Frame, error) {
	if df.Err != nil {
		return Frame{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid dataframe").
			WithCause(df.Err)
	}
	temporal := map[string]bool{}
	for _, name := range df.Names() {
		col := df.Col(name)
		if col.Type() == series.String && looksTemporal(col.Records()) {
			temporal[name] = true
		}
	}
	return Frame{df: df, temporal: temporal}, nil
}

func toSeries(column ports.Column) series.Series {
	if column.Type == types.FieldNumeric {
		values := column.Floats
		if values == nil {
			values = []float64{}
		}
		return series.New(values, series.Float, column.Name)
	}
	values := column.Strings
	if values == nil {
		values = []string{}
	}
	return series.New(values, series.String, column.Name)
}

func (f Frame) Names() []string {
	if f.df.Ncol() == 0 {
		return []string{}
	}
	return f.df.Names()
}

func (f Frame) Len() int {
	if f.df.Ncol() == 0 {
		return 0
	}
	return f.df.Nrow()
}

func (f Frame) Has(name string) bool {
	return slices.Contains(f.Names(), name)
}

func (f Frame) col(name string) (series.Series, error) {
	if !f.Has(name) {
		return series.Series{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("column %q not found", name))
	}
	col := f.df.Col(name)
	if col.Err != nil {
		return series.Series{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read column %q", name)).
			WithCause(col.Err)
	}
	return col, nil
}

func (f Frame) Type(name string) (types.FieldType, error) {
	col, err := f.col(name)
	if err != nil {
		return "", err
	}
	return f.typeOf(col), nil
}

func (f Frame) typeOf(col series.Series) types.FieldType {
	switch col.Type() {
	case series.Float, series.Int:
		return types.FieldNumeric
	case series.String:
		if f.temporal[col.Name] {
			return types.FieldTemporal
		}
	}
	return types.FieldCategorical
}

func (f Frame) Floats(name string) ([]float64, error) {
	col, err := f.col(name)
	if err != nil {
		return nil, err
	}
	switch f.typeOf(col) {
	case types.FieldNumeric:
		return col.Float(), nil
	case types.FieldTemporal:
		records := col.Records()
		out := make([]float64, len(records))
		for i, record := range records {
			parsed, ok := parseTimeFlexible(record)
			if !ok {
				out[i] = math.NaN()
				continue
			}
			out[i] = float64(parsed.UnixNano()) / 1e9
		}
		return out, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("column %q is categorical, not numeric", name))
	}
}

func (f Frame) Strings(name string) ([]string, error) {
	col, err := f.col(name)
	if err != nil {
		return nil, err
	}
	if f.typeOf(col) != types.FieldNumeric {
		return col.Records(), nil
	}
	values := col.Float()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = formatNumber(v)
	}
	return out, nil
}

func (f Frame) Values(name string) ([]any, error) {
	col, err := f.col(name)
	if err != nil {
		return nil, err
	}
	out := make([]any, col.Len())
	if f.typeOf(col) == types.FieldNumeric {
		for i, v := range col.Float() {
			if !math.IsNaN(v) {
				out[i] = v
			}
		}
		return out, nil
	}
	for i, record := range col.Records() {
		if record != "NaN" {
			out[i] = record
		}
	}
	return out, nil
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// GroupBy partitions rows by the distinct combinations of the named columns,
// in order of first appearance.
func (f Frame) GroupBy(names ...string) ([]ports.Group, error) {
	if len(names) == 0 {
		return []ports.Group{{Data: f}}, nil
	}
	labels := make([][]string, 0, len(names))
	for _, name := range names {
		values, err := f.Strings(name)
		if err != nil {
			return nil, err
		}
		labels = append(labels, values)
	}
	order := []string{}
	rows := map[string][]int{}
	keys := map[string][]string{}
	for row := 0; row < f.Len(); row++ {
		parts := make([]string, len(names))
		for i := range names {
			parts[i] = labels[i][row]
		}
		key := strings.Join(parts, "\x1f")
		if _, ok := rows[key]; !ok {
			order = append(order, key)
			keys[key] = parts
		}
		rows[key] = append(rows[key], row)
	}
	groups := make([]ports.Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, ports.Group{Labels: keys[key], Data: f.Subset(rows[key])})
	}
	return groups, nil
}

func (f Frame) Select(names ...string) (ports.Dataset, error) {
	for _, name := range names {
		if !f.Has(name) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("column %q not found", name))
		}
	}
	if len(names) == 0 {
		return Frame{}, nil
	}
	return f.wrap(f.df.Select(names))
}

func (f Frame) Drop(names ...string) ports.Dataset {
	keep := []string{}
	for _, name := range f.Names() {
		if !slices.Contains(names, name) {
			keep = append(keep, name)
		}
	}
	if len(keep) == len(f.Names()) {
		return f
	}
	if len(keep) == 0 {
		return Frame{}
	}
	return Frame{df: f.df.Select(keep), temporal: f.temporal}
}

func (f Frame) WithFloats(name string, values []float64) (ports.Dataset, error) {
	return f.with(ports.Column{Name: name, Type: types.FieldNumeric, Floats: values})
}

func (f Frame) WithStrings(name string, kind types.FieldType, values []string) (ports.Dataset, error) {
	if kind == types.FieldNumeric {
		kind = types.FieldCategorical
	}
	return f.with(ports.Column{Name: name, Type: kind, Strings: values})
}

func (f Frame) with(column ports.Column) (ports.Dataset, error) {
	if f.df.Ncol() == 0 {
		return NewFrame(column)
	}
	if column.Len() != f.Len() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("column %q has %d rows, dataset has %d", column.Name, column.Len(), f.Len()))
	}
	temporal := make(map[string]bool, len(f.temporal)+1)
	for name, ok := range f.temporal {
		temporal[name] = ok
	}
	temporal[column.Name] = column.Type == types.FieldTemporal
	out := Frame{df: f.df.Mutate(toSeries(column)), temporal: temporal}
	return out.checked()
}

func (f Frame) Subset(rows []int) ports.Dataset {
	if f.df.Ncol() == 0 {
		return f
	}
	if rows == nil {
		rows = []int{}
	}
	return Frame{df: f.df.Subset(rows), temporal: f.temporal}
}

func (f Frame) Concat(other ports.Dataset) (ports.Dataset, error) {
	o, ok := other.(Frame)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cannot concatenate %T onto a frame", other))
	}
	if f.df.Ncol() == 0 {
		return o, nil
	}
	if o.df.Ncol() == 0 {
		return f, nil
	}
	temporal := map[string]bool{}
	for name, ok := range f.temporal {
		temporal[name] = ok
	}
	for name, ok := range o.temporal {
		temporal[name] = temporal[name] || ok
	}
	out := Frame{df: f.df.Concat(o.df), temporal: temporal}
	return out.checked()
}

// SortBy is a stable ascending sort on one column; missing values go last.
func (f Frame) SortBy(name string) (ports.Dataset, error) {
	kind, err := f.Type(name)
	if err != nil {
		return nil, err
	}
	if kind != types.FieldTemporal {
		return f.wrap(f.df.Arrange(dataframe.Sort(name)))
	}
	keys, err := f.Floats(name)
	if err != nil {
		return nil, err
	}
	rows := make([]int, len(keys))
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		ka, kb := keys[rows[a]], keys[rows[b]]
		if math.IsNaN(kb) {
			return !math.IsNaN(ka)
		}
		return ka < kb
	})
	return f.Subset(rows), nil
}

func (f Frame) New(columns ...ports.Column) (ports.Dataset, error) {
	return NewFrame(columns...)
}

func (f Frame) wrap(df dataframe.DataFrame) (ports.Dataset, error) {
	return Frame{df: df, temporal: f.temporal}.checked()
}

func (f Frame) checked() (ports.Dataset, error) {
	if f.df.Err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("dataset operation failed").
			WithCause(f.df.Err)
	}
	return f, nil
}

var _ ports.Dataset = Frame{}
