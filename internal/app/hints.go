package app

import (
	"fmt"
	"strings"

	"layerplot/internal/core"
	"layerplot/internal/types"
)

// flagHint pairs a flag name with the plot file field it shadows.
type flagHint struct {
	FlagName  string
	FileField string
}

// checkRenderHints returns hints for render flags that repeat or override a
// value the plot file already sets.
func checkRenderHints(req RenderRequest, file types.PlotFile) []string {
	checks := []struct {
		hint      flagHint
		provided  bool
		inFile    bool
		identical bool
	}{
		{
			hint:      flagHint{"--backend", "backend"},
			provided:  strings.TrimSpace(req.Backend) != "",
			inFile:    file.Backend != "",
			identical: strings.TrimSpace(req.Backend) == file.Backend,
		},
		{
			hint:      flagHint{"--width", "layout.width"},
			provided:  req.Width > 0,
			inFile:    file.Layout.Width > 0,
			identical: req.Width == file.Layout.Width,
		},
		{
			hint:      flagHint{"--height", "layout.height"},
			provided:  req.Height > 0,
			inFile:    file.Layout.Height > 0,
			identical: req.Height == file.Layout.Height,
		},
		{
			hint:      flagHint{"--strict", "strict"},
			provided:  req.Strict,
			inFile:    file.Strict,
			identical: true,
		},
	}

	var hints []string
	for _, c := range checks {
		if !c.provided || !c.inFile {
			continue
		}
		if c.identical {
			hints = append(hints, fmt.Sprintf(
				"hint: %s is also set in the plot file (%s); you can omit the flag",
				c.hint.FlagName, c.hint.FileField,
			))
			continue
		}
		hints = append(hints, fmt.Sprintf(
			"hint: %s overrides %s from the plot file",
			c.hint.FlagName, c.hint.FileField,
		))
	}
	return hints
}

// requestOverrides are the plot-wide bindings a render request forces on top
// of the plot file.
func requestOverrides(req RenderRequest) core.Attrs {
	attrs := core.Attrs{}
	if backend := strings.TrimSpace(req.Backend); backend != "" {
		attrs[core.KeyBackend] = backend
	}
	if req.Width > 0 {
		attrs[core.KeyWidth] = req.Width
	}
	if req.Height > 0 {
		attrs[core.KeyHeight] = req.Height
	}
	return attrs
}
