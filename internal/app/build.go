package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"layerplot/internal/core"
	"layerplot/internal/ports"
	"layerplot/internal/shared"
	"layerplot/internal/types"
)

// datasetLoader loads each data path at most once per build.
type datasetLoader struct {
	source ports.DatasetSourcePort
	loaded map[string]ports.Dataset
}

func (l *datasetLoader) load(path string) (ports.Dataset, error) {
	if ds, ok := l.loaded[path]; ok {
		return ds, nil
	}
	ds, err := l.source.Load(path)
	if err != nil {
		return nil, err
	}
	l.loaded[path] = ds
	return ds, nil
}

// buildPlot turns a plot file into a plot. A non-empty dataPath replaces the
// file's top-level data.
func (s Service) buildPlot(ctx context.Context, file types.PlotFile, dataPath string) (core.Plot, error) {
	loader := &datasetLoader{source: s.DataSource, loaded: map[string]ports.Dataset{}}
	path := strings.TrimSpace(dataPath)
	if path == "" {
		path = file.Data
	}
	var base any
	if path != "" {
		ds, err := loader.load(path)
		if err != nil {
			return core.Plot{}, err
		}
		base = ds
	}
	plot := core.Base(base, layoutOverrides(file))

	for i, spec := range file.Layers {
		layers, err := layerFromSpec(spec, loader)
		if err != nil {
			return core.Plot{}, withLayerIndex(i, err)
		}
		if len(file.Facet) > 0 {
			layers = core.Facet(layers, file.Facet...)
		}
		plot = plot.Add(layers)
	}
	log.Ctx(ctx).Debug().
		Str("plot", file.Metadata.Name).
		Int("layers", len(file.Layers)).
		Int("datasets", len(loader.loaded)).
		Msg("plot built")
	return plot, nil
}

func layoutOverrides(file types.PlotFile) core.Attrs {
	attrs := core.Attrs{}
	if file.Backend != "" {
		attrs[core.KeyBackend] = file.Backend
	}
	layout := file.Layout
	if layout.Width > 0 {
		attrs[core.KeyWidth] = layout.Width
	}
	if layout.Height > 0 {
		attrs[core.KeyHeight] = layout.Height
	}
	if layout.Title != "" {
		attrs[core.KeyTitle] = layout.Title
	}
	if layout.XTitle != "" {
		attrs[core.KeyXTitle] = layout.XTitle
	}
	if layout.YTitle != "" {
		attrs[core.KeyYTitle] = layout.YTitle
	}
	if layout.ShowGrid != nil {
		attrs[core.KeyShowGrid] = *layout.ShowGrid
	}
	if layout.GridColor != "" {
		attrs[core.KeyGridColor] = layout.GridColor
	}
	if layout.Background != "" {
		attrs[core.KeyBackground] = layout.Background
	}
	if layout.BoxMode != "" {
		attrs[core.KeyBoxMode] = layout.BoxMode
	}
	if layout.ViolinMode != "" {
		attrs[core.KeyViolinMode] = layout.ViolinMode
	}
	return attrs
}

// layerFromSpec builds one layer as the product of its data, kind, stat
// parameters, mappings and visuals.
func layerFromSpec(spec types.LayerSpec, loader *datasetLoader) (core.Layers, error) {
	factors := []core.Layers{}
	if spec.Data != "" {
		ds, err := loader.load(spec.Data)
		if err != nil {
			return nil, err
		}
		factors = append(factors, core.Data(ds))
	}

	if spec.Mark != "" {
		mark, _, err := core.LayerKind(shared.NormalizeName(string(spec.Mark)))
		if err != nil {
			return nil, err
		}
		if mark == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%q is a stat, not a mark", spec.Mark))
		}
		factors = append(factors, core.Mark(mark))
	}
	if spec.Stat != "" {
		_, stat, err := core.LayerKind(shared.NormalizeName(string(spec.Stat)))
		if err != nil {
			return nil, err
		}
		if stat == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%q is a mark, not a stat", spec.Stat))
		}
		factors = append(factors, core.Stat(stat, statParams(spec.Params)))
	}
	if spec.Mark == "" && spec.Stat == "" {
		factors = append(factors, core.Mark(types.MarkPoint))
	}

	mapping, err := core.Mapping(nil, mappedColumns(spec))
	if err != nil {
		return nil, err
	}
	factors = append(factors, mapping)

	if len(spec.Group) > 0 {
		groups := make([]types.Symbol, 0, len(spec.Group))
		for _, column := range spec.Group {
			groups = append(groups, types.Symbol(column))
		}
		factors = append(factors, core.Layers{core.NewLayer(core.Attrs{core.KeyGroup: groups})})
	}

	values := map[types.Aesthetic]any{}
	for name, value := range spec.Visual {
		values[types.Aesthetic(shared.NormalizeName(name))] = value
	}
	if spec.Name != "" {
		values[types.AesName] = spec.Name
	}
	if len(values) > 0 {
		visual, err := core.Visual(values)
		if err != nil {
			return nil, err
		}
		factors = append(factors, visual)
	}
	return core.ProductAll(factors...), nil
}

func mappedColumns(spec types.LayerSpec) map[types.Aesthetic]string {
	columns := map[types.Aesthetic]string{
		types.AesX:      spec.X,
		types.AesY:      spec.Y,
		types.AesZ:      spec.Z,
		types.AesX1:     spec.X1,
		types.AesY1:     spec.Y1,
		types.AesColor:  spec.Color,
		types.AesSize:   spec.Size,
		types.AesSymbol: spec.Symbol,
		types.AesText:   spec.Text,
	}
	for aes, column := range columns {
		if strings.TrimSpace(column) == "" {
			delete(columns, aes)
		}
	}
	return columns
}

func statParams(params types.StatParams) core.Attrs {
	attrs := core.Attrs{}
	if params.Bins > 0 {
		attrs[core.KeyBins] = params.Bins
	}
	if params.Bandwidth > 0 {
		attrs[core.KeyBandwidth] = params.Bandwidth
	}
	if params.Points > 0 {
		attrs[core.KeyPoints] = params.Points
	}
	if params.Model != "" {
		attrs[core.KeyModel] = string(params.Model)
	}
	if params.Span > 0 {
		attrs[core.KeySpan] = params.Span
	}
	if params.Degree > 0 {
		attrs[core.KeyDegree] = params.Degree
	}
	if len(params.Predictors) > 0 {
		predictors := make([]types.Symbol, 0, len(params.Predictors))
		for _, column := range params.Predictors {
			predictors = append(predictors, types.Symbol(column))
		}
		attrs[core.KeyPredictors] = predictors
	}
	if len(params.Terms) > 0 {
		attrs[core.KeyTerms] = params.Terms
	}
	return attrs
}

// withLayerIndex prefixes errbuilder messages with the failing layer. Typed
// errors pass through unchanged so callers can still match them.
func withLayerIndex(index int, err error) error {
	if _, ok := err.(*errbuilder.ErrBuilder); !ok {
		return err
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeOf(err)).
		WithMsg(fmt.Sprintf("layer %d", index+1)).
		WithCause(err)
}
