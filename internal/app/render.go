package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"layerplot/internal/adapters"
	"layerplot/internal/core"
	"layerplot/internal/ports"
	"layerplot/internal/types"
)

func (s Service) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	plotPath := strings.TrimSpace(req.PlotPath)
	if plotPath == "" {
		return RenderResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plot file path is required")
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return RenderResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}

	renderID := s.renderID()
	logger := log.Ctx(ctx).With().Str("render_id", renderID).Logger()
	ctx = logger.WithContext(ctx)

	file, err := s.PlotSource.LoadPlot(plotPath)
	if err != nil {
		return RenderResult{}, err
	}
	figure, err := s.renderFile(ctx, file, req.DataPath, requestOverrides(req), req.Strict)
	if err != nil {
		return RenderResult{}, err
	}
	if err := s.figureWriter(req.Indent).WriteFigure(outputPath, figure); err != nil {
		return RenderResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("plot", file.Metadata.Name).
		Str("output", outputPath).
		Int("traces", len(figure.Data)).
		Msg("figure written")
	return RenderResult{
		PlotName:   file.Metadata.Name,
		RenderID:   renderID,
		OutputPath: outputPath,
		Traces:     len(figure.Data),
		Hints:      checkRenderHints(req, file),
	}, nil
}

// renderFile validates, builds and resolves a plot file in memory.
func (s Service) renderFile(ctx context.Context, file types.PlotFile, dataPath string, overrides core.Attrs, strict bool) (types.Figure, error) {
	if err := ValidatePlotFile(ctx, file); err != nil {
		return types.Figure{}, err
	}
	plot, err := s.buildPlot(ctx, file, dataPath)
	if err != nil {
		return types.Figure{}, err
	}
	plot = core.Base(plot, overrides)

	renderer := core.NewRenderer(s.Policy)
	renderer.Strict = strict || file.Strict
	return renderer.Render(ctx, plot)
}

func (s Service) figureWriter(indent bool) ports.FigureWriterPort {
	if writer, ok := s.FigureWriter.(adapters.FigureFileAdapter); ok && indent {
		writer.Indent = true
		return writer
	}
	return s.FigureWriter
}
