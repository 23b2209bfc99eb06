package policies

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"layerplot/internal/ports"
)

var defaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
	"#9467bd", "#8c564b", "#e377c2", "#7f7f7f",
}

var defaultSizes = []float64{6, 9, 12, 15, 18, 21, 24, 27}

var defaultSymbols = []string{
	"circle", "square", "diamond", "cross",
	"x", "triangle-up", "triangle-down", "star",
}

const (
	DefaultSizeMin = 6
	DefaultSizeMax = 24

	GridColor       = "#e5e5e5"
	BackgroundColor = "#ffffff"
)

// EncodingPolicy holds the fixed palettes categorical mappings cycle
// through. Colours are kept in plotly's rgba() form.
type EncodingPolicy struct {
	colors  []string
	sizes   []float64
	symbols []string
	sizeMin float64
	sizeMax float64
}

func NewEncodingPolicy() EncodingPolicy {
	colors := make([]string, 0, len(defaultColors))
	for _, hex := range defaultColors {
		colors = append(colors, NormalizeColor(hex))
	}
	return EncodingPolicy{
		colors:  colors,
		sizes:   append([]float64(nil), defaultSizes...),
		symbols: append([]string(nil), defaultSymbols...),
		sizeMin: DefaultSizeMin,
		sizeMax: DefaultSizeMax,
	}
}

func (p EncodingPolicy) Colors() []string {
	return p.colors
}

func (p EncodingPolicy) Sizes() []float64 {
	return p.sizes
}

func (p EncodingPolicy) Symbols() []string {
	return p.symbols
}

func (p EncodingPolicy) SizeRange() (float64, float64) {
	return p.sizeMin, p.sizeMax
}

// WithSizeRange returns a copy rescaling numeric sizes into [lo, hi].
func (p EncodingPolicy) WithSizeRange(lo float64, hi float64) EncodingPolicy {
	if lo > hi {
		lo, hi = hi, lo
	}
	p.sizeMin, p.sizeMax = lo, hi
	return p
}

// NormalizeColor rewrites hex and rgb() colours into rgba() form. Named
// colours and anything unparseable are returned unchanged.
func NormalizeColor(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(trimmed, "#") && (len(trimmed) == 4 || len(trimmed) == 7):
		return drawing.ColorFromHex(trimmed).String()
	case strings.HasPrefix(trimmed, "rgb(") || strings.HasPrefix(trimmed, "rgba("):
		return drawing.ParseColor(trimmed).String()
	}
	return trimmed
}

var _ ports.EncodingPolicyPort = EncodingPolicy{}
