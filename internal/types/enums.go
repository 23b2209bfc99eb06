package types

type MarkKind string

const (
	MarkPoint   MarkKind = "point"
	MarkLine    MarkKind = "line"
	MarkBar     MarkKind = "bar"
	MarkBox     MarkKind = "box"
	MarkViolin  MarkKind = "violin"
	MarkSegment MarkKind = "segment"
	MarkText    MarkKind = "text"
	MarkHeatmap MarkKind = "heatmap"
	MarkSurface MarkKind = "surface"
)

var MarkKinds = []MarkKind{
	MarkPoint, MarkLine, MarkBar, MarkBox, MarkViolin,
	MarkSegment, MarkText, MarkHeatmap, MarkSurface,
}

type StatKind string

const (
	StatIdentity    StatKind = "identity"
	StatSmooth      StatKind = "smooth"
	StatHistogram   StatKind = "histogram"
	StatHistogram2D StatKind = "histogram2d"
	StatDensity     StatKind = "density"
	StatCorrelation StatKind = "correlation"
)

var StatKinds = []StatKind{
	StatIdentity, StatSmooth, StatHistogram, StatHistogram2D, StatDensity, StatCorrelation,
}

type FieldType string

const (
	FieldNumeric     FieldType = "numeric"
	FieldTemporal    FieldType = "temporal"
	FieldCategorical FieldType = "categorical"
)

// Aesthetic names a visual channel a column or literal can drive.
type Aesthetic string

const (
	AesX         Aesthetic = "x"
	AesY         Aesthetic = "y"
	AesZ         Aesthetic = "z"
	AesX1        Aesthetic = "x1"
	AesY1        Aesthetic = "y1"
	AesColor     Aesthetic = "color"
	AesSize      Aesthetic = "size"
	AesSymbol    Aesthetic = "symbol"
	AesText      Aesthetic = "text"
	AesGroup     Aesthetic = "group"
	AesOpacity   Aesthetic = "opacity"
	AesLineWidth Aesthetic = "line_width"
	AesLineDash  Aesthetic = "line_dash"
	AesName      Aesthetic = "name"
)

type SmoothModel string

const (
	ModelOLS   SmoothModel = "ols"
	ModelLOESS SmoothModel = "loess"
)

const BackendPlotly = "plotly"
