package app

type RenderRequest struct {
	PlotPath   string
	DataPath   string
	OutputPath string
	Backend    string
	Width      int
	Height     int
	Strict     bool
	Indent     bool
}

type RenderResult struct {
	PlotName   string
	RenderID   string
	OutputPath string
	Traces     int
	Hints      []string
}

type ValidateRequest struct {
	PlotPath string
	DataPath string
	Strict   bool
}

type ValidateResult struct {
	PlotName string
	Layers   int
	Traces   int
}

type InspectRequest struct {
	FigurePath string
}

type TraceTypeCount struct {
	Type  string
	Count int
}

type InspectResult struct {
	Traces     int
	TraceTypes []TraceTypeCount
	Title      string
	XTitle     string
	YTitle     string
}
