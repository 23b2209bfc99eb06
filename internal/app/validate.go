package app

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"layerplot/internal/core"
	"layerplot/internal/types"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	plotPath := strings.TrimSpace(req.PlotPath)
	if plotPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plot file path is required")
	}
	file, err := s.PlotSource.LoadPlot(plotPath)
	if err != nil {
		return ValidateResult{}, err
	}
	figure, err := s.renderFile(ctx, file, req.DataPath, core.Attrs{}, req.Strict)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		PlotName: file.Metadata.Name,
		Layers:   len(file.Layers),
		Traces:   len(figure.Data),
	}, nil
}

// ValidatePlotFile checks the structure of a loaded plot file. Column and
// parameter checks happen when the plot is rendered.
func ValidatePlotFile(ctx context.Context, file types.PlotFile) error {
	assert.NotEmpty(ctx, file.Kind, "kind must be set")
	if strings.TrimSpace(file.Metadata.Name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata.name must be set")
	}
	if len(file.Layers) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plot must have at least one layer")
	}
	for i, layer := range file.Layers {
		if err := validateLayer(layer); err != nil {
			return withLayerIndex(i, err)
		}
	}
	for _, column := range file.Facet {
		if strings.TrimSpace(column) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("facet columns must not be empty")
		}
	}
	log.Ctx(ctx).Debug().Str("plot", file.Metadata.Name).Msg("plot file validated")
	return nil
}

func validateLayer(layer types.LayerSpec) error {
	if layer.Mark == "" && layer.Stat == "" && layer.X == "" && layer.Y == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("layer sets neither a kind nor a mapping")
	}
	params := layer.Params
	if params.Bins < 0 || params.Points < 0 || params.Degree < 0 || params.Bandwidth < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("stat params must not be negative")
	}
	if params.Span < 0 || params.Span > 1 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("span %g is outside (0, 1]", params.Span))
	}
	if params.Model != "" && params.Model != types.ModelOLS && params.Model != types.ModelLOESS {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown smooth model %q", params.Model))
	}
	if len(params.Terms) > 0 && params.Model == types.ModelLOESS {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("loess does not take terms")
	}
	return nil
}
