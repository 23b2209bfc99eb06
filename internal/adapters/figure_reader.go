package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	json "github.com/goccy/go-json"

	"layerplot/internal/ports"
	"layerplot/internal/types"
)

type FigureReaderAdapter struct{}

func NewFigureReaderAdapter() FigureReaderAdapter {
	return FigureReaderAdapter{}
}

type figureDocument struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

func (a FigureReaderAdapter) ReadFigureSummary(path string) (types.FigureSummary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.FigureSummary{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("figure file not found").
			WithCause(err)
	}
	var doc figureDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return types.FigureSummary{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid figure json").
			WithCause(err)
	}
	summary := types.FigureSummary{
		Traces:     len(doc.Data),
		TraceTypes: map[string]int{},
		Title:      stringField(doc.Layout, "title"),
	}
	for _, trace := range doc.Data {
		kind := stringField(trace, "type")
		if kind == "" {
			kind = "scatter"
		}
		summary.TraceTypes[kind]++
	}
	if axis, ok := doc.Layout["xaxis"].(map[string]any); ok {
		summary.XTitle = stringField(axis, "title")
	}
	if axis, ok := doc.Layout["yaxis"].(map[string]any); ok {
		summary.YTitle = stringField(axis, "title")
	}
	return summary, nil
}

func stringField(m map[string]any, name string) string {
	if s, ok := m[name].(string); ok {
		return s
	}
	return ""
}

var _ ports.FigureReaderPort = FigureReaderAdapter{}
