package types

type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

type LayoutSpec struct {
	Title      string `yaml:"title,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`
	XTitle     string `yaml:"x_title,omitempty"`
	YTitle     string `yaml:"y_title,omitempty"`
	ShowGrid   *bool  `yaml:"show_grid,omitempty"`
	GridColor  string `yaml:"grid_color,omitempty"`
	Background string `yaml:"background,omitempty"`
	BoxMode    string `yaml:"box_mode,omitempty"`
	ViolinMode string `yaml:"violin_mode,omitempty"`
}

// LayerSpec describes one layer of a plot file. Mark and Stat are both
// optional; a stat without a mark uses the stat's usual mark.
type LayerSpec struct {
	Mark   MarkKind       `yaml:"mark,omitempty"`
	Stat   StatKind       `yaml:"stat,omitempty"`
	Data   string         `yaml:"data,omitempty"`
	X      string         `yaml:"x,omitempty"`
	Y      string         `yaml:"y,omitempty"`
	Z      string         `yaml:"z,omitempty"`
	X1     string         `yaml:"x1,omitempty"`
	Y1     string         `yaml:"y1,omitempty"`
	Color  string         `yaml:"color,omitempty"`
	Size   string         `yaml:"size,omitempty"`
	Symbol string         `yaml:"symbol,omitempty"`
	Text   string         `yaml:"text,omitempty"`
	Group  []string       `yaml:"group,omitempty"`
	Name   string         `yaml:"name,omitempty"`
	Visual map[string]any `yaml:"visual,omitempty"`
	Params StatParams     `yaml:"params,omitempty"`
}

type StatParams struct {
	Bins       int               `yaml:"bins,omitempty"`
	Bandwidth  float64           `yaml:"bandwidth,omitempty"`
	Points     int               `yaml:"points,omitempty"`
	Model      SmoothModel       `yaml:"model,omitempty"`
	Span       float64           `yaml:"span,omitempty"`
	Degree     int               `yaml:"degree,omitempty"`
	Predictors []string          `yaml:"predictors,omitempty"`
	Terms      map[string]string `yaml:"terms,omitempty"`
}

// PlotFile is the YAML description of a plot.
type PlotFile struct {
	APIVersion string      `yaml:"api_version"`
	Kind       string      `yaml:"kind"`
	Metadata   Metadata    `yaml:"metadata"`
	Data       string      `yaml:"data"`
	Backend    string      `yaml:"backend,omitempty"`
	Strict     bool        `yaml:"strict,omitempty"`
	Layout     LayoutSpec  `yaml:"layout,omitempty"`
	Facet      []string    `yaml:"facet,omitempty"`
	Layers     []LayerSpec `yaml:"layers"`
}

// FigureSummary describes a written figure without its column data.
type FigureSummary struct {
	Traces     int
	TraceTypes map[string]int
	Title      string
	XTitle     string
	YTitle     string
}
