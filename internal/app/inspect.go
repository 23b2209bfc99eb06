package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	figurePath := strings.TrimSpace(req.FigurePath)
	if figurePath == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("figure path is required")
	}
	summary, err := s.FigureReader.ReadFigureSummary(figurePath)
	if err != nil {
		return InspectResult{}, err
	}
	counts := make([]TraceTypeCount, 0, len(summary.TraceTypes))
	for _, kind := range sortedKeys(summary.TraceTypes) {
		counts = append(counts, TraceTypeCount{Type: kind, Count: summary.TraceTypes[kind]})
	}
	return InspectResult{
		Traces:     summary.Traces,
		TraceTypes: counts,
		Title:      summary.Title,
		XTitle:     summary.XTitle,
		YTitle:     summary.YTitle,
	}, nil
}

func sortedKeys[K comparable, V any](input map[K]V) []K {
	keys := make([]K, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}
