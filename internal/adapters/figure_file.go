package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	json "github.com/goccy/go-json"

	"layerplot/internal/ports"
	"layerplot/internal/types"
)

type FigureFileAdapter struct {
	Indent bool
}

func NewFigureFileAdapter(indent bool) FigureFileAdapter {
	return FigureFileAdapter{Indent: indent}
}

func (a FigureFileAdapter) WriteFigure(path string, figure types.Figure) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if a.Indent {
		data, err = json.MarshalIndent(figure, "", "  ")
	} else {
		data, err = json.Marshal(figure)
	}
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode figure").
			WithCause(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write figure").
			WithCause(err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return nil
}

var _ ports.FigureWriterPort = FigureFileAdapter{}
