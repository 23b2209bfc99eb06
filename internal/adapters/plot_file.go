package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"layerplot/internal/ports"
	"layerplot/internal/shared"
	"layerplot/internal/types"
)

const (
	PlotAPIVersion = "v1"
	PlotKind       = "plot"
)

type PlotFileAdapter struct{}

func NewPlotFileAdapter() PlotFileAdapter {
	return PlotFileAdapter{}
}

// LoadPlot parses a plot file. Data paths in the file are made relative to
// the file's directory.
func (a PlotFileAdapter) LoadPlot(path string) (types.PlotFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PlotFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("plot file not found").
			WithCause(err)
	}
	var plot types.PlotFile
	if err := yaml.Unmarshal(data, &plot); err != nil {
		return types.PlotFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse plot yaml").
			WithCause(err)
	}
	if plot.Kind != PlotKind {
		return types.PlotFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plot file kind is not plot")
	}
	if plot.APIVersion != "" && plot.APIVersion != PlotAPIVersion {
		return types.PlotFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported plot api_version " + plot.APIVersion)
	}

	base := filepath.Dir(path)
	plot.Data = shared.ResolvePath(base, plot.Data)
	for i := range plot.Layers {
		plot.Layers[i].Data = shared.ResolvePath(base, plot.Layers[i].Data)
	}
	return plot, nil
}

var _ ports.PlotSpecPort = PlotFileAdapter{}
