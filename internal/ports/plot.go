package ports

import "layerplot/internal/types"

type PlotSpecPort interface {
	LoadPlot(path string) (types.PlotFile, error)
}

type FigureWriterPort interface {
	WriteFigure(path string, figure types.Figure) error
}

type FigureReaderPort interface {
	ReadFigureSummary(path string) (types.FigureSummary, error)
}
