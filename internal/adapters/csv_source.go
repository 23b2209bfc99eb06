package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-gota/gota/dataframe"

	"layerplot/internal/ports"
)

type CSVSourceAdapter struct{}

func NewCSVSourceAdapter() CSVSourceAdapter {
	return CSVSourceAdapter{}
}

func (a CSVSourceAdapter) Load(path string) (ports.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("data file not found").
			WithCause(err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues([]string{"", "NA", "NaN", "<nil>"}),
	)
	if df.Err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse csv data").
			WithCause(df.Err)
	}
	return FrameFromDataFrame(df)
}

var _ ports.DatasetSourcePort = CSVSourceAdapter{}
