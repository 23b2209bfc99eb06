package types

import (
	"bytes"
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// Figure is a fully resolved chart: traces plus layout, encodable as plotly
// JSON.
type Figure struct {
	Data   []*Map `json:"data"`
	Layout *Map   `json:"layout"`
}

// FigureFromNode extracts a figure from a resolved root map with "data" and
// "layout" entries.
func FigureFromNode(n Node) (Figure, error) {
	root, ok := n.(*Map)
	if !ok {
		return Figure{}, fmt.Errorf("resolved plot is %T, not a map", n)
	}
	fig := Figure{Layout: NewMap()}
	if data, ok := root.Get("data"); ok {
		list, ok := data.(*List)
		if !ok {
			return Figure{}, fmt.Errorf("resolved data is %T, not a list", data)
		}
		for i, item := range list.Items {
			trace, ok := item.(*Map)
			if !ok {
				return Figure{}, fmt.Errorf("trace %d is %T, not a map", i, item)
			}
			fig.Data = append(fig.Data, trace)
		}
	}
	if layout, ok := root.Get("layout"); ok {
		m, ok := layout.(*Map)
		if !ok {
			return Figure{}, fmt.Errorf("resolved layout is %T, not a map", layout)
		}
		fig.Layout = m
	}
	if fig.Data == nil {
		fig.Data = []*Map{}
	}
	return fig, nil
}

func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range m.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(NameOf(entry.Name))
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := marshalNode(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", NameOf(entry.Name), err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range l.Items {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := marshalNode(item)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSafe(s.Value))
}

func (o Opaque) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSafe(o.Payload))
}

func (s Symbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (k Key) MarshalJSON() ([]byte, error) {
	return nil, fmt.Errorf("unresolved placeholder %q", string(k))
}

func marshalNode(n Node) ([]byte, error) {
	if n == nil || IsOmit(n) {
		return []byte("null"), nil
	}
	return json.Marshal(n)
}

// jsonSafe replaces non-finite floats, which JSON cannot carry, with nulls.
func jsonSafe(v any) any {
	switch value := v.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil
		}
	case []float64:
		out := make([]any, len(value))
		for i, f := range value {
			out[i] = jsonSafe(f)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = jsonSafe(item)
		}
		return out
	case [][]any:
		out := make([][]any, len(value))
		for i, row := range value {
			out[i] = jsonSafe(row).([]any)
		}
		return out
	}
	return v
}
