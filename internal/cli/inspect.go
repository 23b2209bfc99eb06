package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"layerplot/internal/app"
)

type inspectOptions struct {
	Figure string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a rendered figure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Figure, "figure", "figure.json", "Figure JSON path")
	_ = viper.BindPFlag("figure", cmd.Flags().Lookup("figure"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		FigurePath: resolveString(cmd, opts.Figure, "figure", "figure"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "traces: %d\n", result.Traces)
	for _, count := range result.TraceTypes {
		fmt.Fprintf(out, "- %s: %d\n", count.Type, count.Count)
	}
	if result.Title != "" {
		fmt.Fprintf(out, "title: %s\n", result.Title)
	}
	if result.XTitle != "" {
		fmt.Fprintf(out, "x axis: %s\n", result.XTitle)
	}
	if result.YTitle != "" {
		fmt.Fprintf(out, "y axis: %s\n", result.YTitle)
	}
	return nil
}
