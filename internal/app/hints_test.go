package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"layerplot/internal/core"
	"layerplot/internal/types"
)

func TestCheckRenderHints(t *testing.T) {
	file := types.PlotFile{
		Backend: "plotly",
		Layout:  types.LayoutSpec{Width: 800},
	}

	tests := []struct {
		name     string
		req      RenderRequest
		expected []string
	}{
		{
			name:     "no flags",
			req:      RenderRequest{},
			expected: nil,
		},
		{
			name: "flag repeats the file",
			req:  RenderRequest{Width: 800},
			expected: []string{
				"hint: --width is also set in the plot file (layout.width); you can omit the flag",
			},
		},
		{
			name: "flag overrides the file",
			req:  RenderRequest{Backend: "other", Width: 640},
			expected: []string{
				"hint: --backend overrides backend from the plot file",
				"hint: --width overrides layout.width from the plot file",
			},
		},
		{
			name:     "flag without file value",
			req:      RenderRequest{Height: 300, Strict: true},
			expected: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, checkRenderHints(tc.req, file))
		})
	}
}

func TestRequestOverrides(t *testing.T) {
	assert.Empty(t, requestOverrides(RenderRequest{Backend: "  "}))

	attrs := requestOverrides(RenderRequest{Backend: "plotly", Width: 900, Height: 400})
	assert.Equal(t, core.Attrs{
		core.KeyBackend: "plotly",
		core.KeyWidth:   900,
		core.KeyHeight:  400,
	}, attrs)
}
