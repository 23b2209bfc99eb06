package core

import "layerplot/internal/types"

// Data and statistics.
const (
	KeyData        types.Key = "data"
	KeyStat        types.Key = "stat"
	KeyMark        types.Key = "mark"
	KeyTransformed types.Key = "transformed"
	KeyGroupBy     types.Key = "group_by"
	KeyBins        types.Key = "bins"
	KeyBandwidth   types.Key = "bandwidth"
	KeyPoints      types.Key = "points"
	KeyPredictors  types.Key = "predictors"
	KeyTerms       types.Key = "terms"
	KeyModel       types.Key = "model"
	KeySpan        types.Key = "span"
	KeyDegree      types.Key = "degree"
)

// Column mappings. Values are symbols naming dataset columns.
const (
	KeyX      types.Key = "x"
	KeyY      types.Key = "y"
	KeyZ      types.Key = "z"
	KeyX1     types.Key = "x1"
	KeyY1     types.Key = "y1"
	KeyColor  types.Key = "color"
	KeySize   types.Key = "size"
	KeySymbol types.Key = "symbol"
	KeyText   types.Key = "text"
	KeyGroup  types.Key = "group"
	KeyFacet  types.Key = "facet"
)

// Literal visual overrides.
const (
	KeyMarkerColor  types.Key = "marker_color"
	KeyMarkerSize   types.Key = "marker_size"
	KeyMarkerSymbol types.Key = "marker_symbol"
	KeyOpacity      types.Key = "opacity"
	KeyLineWidth    types.Key = "line_width"
	KeyLineDash     types.Key = "line_dash"
	KeyName         types.Key = "name"
	KeyTextLiteral  types.Key = "text_literal"
)

// Plotted fields: the columns of the transformed data a trace draws, and the
// axis labels they imply.
const (
	KeyFieldX types.Key = "field_x"
	KeyFieldY types.Key = "field_y"
	KeyFieldZ types.Key = "field_z"
	KeyXLabel types.Key = "x_label"
	KeyYLabel types.Key = "y_label"
)

// Traces.
const (
	KeyTraces         types.Key = "traces"
	KeyPartition      types.Key = "partition"
	KeyGroupLabel     types.Key = "group_label"
	KeyTraceType      types.Key = "trace_type"
	KeyMode           types.Key = "mode"
	KeyTraceName      types.Key = "trace_name"
	KeyTraceX         types.Key = "trace_x"
	KeyTraceY         types.Key = "trace_y"
	KeyTraceZ         types.Key = "trace_z"
	KeyTraceText      types.Key = "trace_text"
	KeyTraceWidth     types.Key = "trace_width"
	KeyTraceColor     types.Key = "trace_color"
	KeyTraceLineColor types.Key = "trace_line_color"
	KeyTraceSize      types.Key = "trace_size"
	KeyTraceSymbol    types.Key = "trace_symbol"
	KeyZMin           types.Key = "zmin"
	KeyZMax           types.Key = "zmax"
	KeyColorscale     types.Key = "colorscale"
)

// Per-layer contributions to the layout.
const (
	KeyLayerXTitle      types.Key = "layer_x_title"
	KeyLayerYTitle      types.Key = "layer_y_title"
	KeyLayerBoxMode     types.Key = "layer_box_mode"
	KeyLayerViolinMode  types.Key = "layer_violin_mode"
	KeyLayerAnnotations types.Key = "layer_annotations"
)

// Layout.
const (
	KeyLayout              types.Key = "layout"
	KeyLayers              types.Key = "layers"
	KeyWidth               types.Key = "width"
	KeyHeight              types.Key = "height"
	KeyMargin              types.Key = "margin"
	KeyTitle               types.Key = "title"
	KeyXTitle              types.Key = "x_title"
	KeyYTitle              types.Key = "y_title"
	KeyXAxisTitle          types.Key = "xaxis_title"
	KeyYAxisTitle          types.Key = "yaxis_title"
	KeyGridColor           types.Key = "grid_color"
	KeyShowGrid            types.Key = "show_grid"
	KeyBackground          types.Key = "background"
	KeyBoxMode             types.Key = "box_mode"
	KeyViolinMode          types.Key = "violin_mode"
	KeyAnnotations         types.Key = "annotations"
	KeyAnnotationFontScale types.Key = "annotation_font_scale"
)

// Palettes and engine switches.
const (
	KeyColorPalette  types.Key = "color_palette"
	KeySizePalette   types.Key = "size_palette"
	KeySymbolPalette types.Key = "symbol_palette"
	KeySizeMin       types.Key = "size_min"
	KeySizeMax       types.Key = "size_max"
	KeyBackend       types.Key = "backend"
	KeyDropEmpty     types.Key = "drop_empty"
)
