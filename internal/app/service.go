package app

import (
	"github.com/google/uuid"

	"layerplot/internal/adapters"
	"layerplot/internal/policies"
	"layerplot/internal/ports"
)

type Service struct {
	PlotSource   ports.PlotSpecPort
	DataSource   ports.DatasetSourcePort
	FigureWriter ports.FigureWriterPort
	FigureReader ports.FigureReaderPort
	Policy       ports.EncodingPolicyPort
	NewID        func() string
}

func NewService() Service {
	return Service{
		PlotSource:   adapters.NewPlotFileAdapter(),
		DataSource:   adapters.NewCSVSourceAdapter(),
		FigureWriter: adapters.NewFigureFileAdapter(false),
		FigureReader: adapters.NewFigureReaderAdapter(),
		Policy:       policies.NewEncodingPolicy(),
		NewID:        uuid.NewString,
	}
}

func (s Service) renderID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}
