package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"layerplot/internal/app"
)

type renderOptions struct {
	Plot    string
	Data    string
	Output  string
	Backend string
	Width   int
	Height  int
	Strict  bool
	Indent  bool
}

func newRenderCommand() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a plot file into a plotly figure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Plot, "plot", "", "Plot file path")
	cmd.Flags().StringVar(&opts.Data, "data", "", "CSV data path (overrides the plot file)")
	cmd.Flags().StringVar(&opts.Output, "output", "figure.json", "Figure output path")
	cmd.Flags().StringVar(&opts.Backend, "backend", "", "Backend (overrides the plot file)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "Figure width in pixels (overrides the plot file)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "Figure height in pixels (overrides the plot file)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Reject rules that read undeclared keys")
	cmd.Flags().BoolVar(&opts.Indent, "indent", false, "Indent the figure JSON")

	_ = viper.BindPFlag("plot", cmd.Flags().Lookup("plot"))
	_ = viper.BindPFlag("data", cmd.Flags().Lookup("data"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("backend", cmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("width", cmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("height", cmd.Flags().Lookup("height"))
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("indent", cmd.Flags().Lookup("indent"))

	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, opts renderOptions) error {
	service := newAppService()
	result, err := service.Render(ctx, app.RenderRequest{
		PlotPath:   resolveString(cmd, opts.Plot, "plot", "plot"),
		DataPath:   resolveString(cmd, opts.Data, "data", "data"),
		OutputPath: resolveString(cmd, opts.Output, "output", "output"),
		Backend:    resolveString(cmd, opts.Backend, "backend", "backend"),
		Width:      resolveInt(cmd, opts.Width, "width", "width"),
		Height:     resolveInt(cmd, opts.Height, "height", "height"),
		Strict:     resolveBool(cmd, opts.Strict, "strict", "strict"),
		Indent:     resolveBool(cmd, opts.Indent, "indent", "indent"),
	})
	if err != nil {
		return err
	}
	for _, hint := range result.Hints {
		fmt.Fprintln(cmd.ErrOrStderr(), hint)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rendered: %s -> %s (%d traces, render %s)\n",
		result.PlotName, result.OutputPath, result.Traces, result.RenderID)
	return nil
}
