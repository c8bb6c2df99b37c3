package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/flowline/model/gantt"
)

func newRenderCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <process>",
		Short: "Render a process timeline as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			URL, result, err := a.render(cmd.Context(), args[0], output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d elements, %d issues)\n", URL, len(result.Elements), len(result.Issues))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output location (default <process id>.png)")
	return cmd
}

func (a *app) render(ctx context.Context, location, output string) (string, *gantt.Result, error) {
	rt := a.runtime()
	process, err := rt.LoadProcess(ctx, location)
	if err != nil {
		return "", nil, err
	}
	result, err := rt.Transform(ctx, process)
	if err != nil {
		return "", nil, err
	}
	buffer := new(bytes.Buffer)
	if err = rt.RenderPNG(ctx, result, buffer); err != nil {
		return "", nil, err
	}
	if output == "" {
		output = process.ID + ".png"
	}
	URL, err := a.upload(ctx, output, buffer.Bytes())
	return URL, result, err
}
