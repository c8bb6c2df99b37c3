package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/viant/flowline/internal/logging"
	"github.com/viant/flowline/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "watch <process>",
		Short: "Re-render a process timeline whenever its document changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, args[0], output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output location (default <process id>.png)")
	return cmd
}

func (a *app) watch(ctx context.Context, location, output string, w io.Writer) error {
	path := location
	if strings.Contains(location, "://") {
		if url.Scheme(location, file.Scheme) != file.Scheme {
			return fmt.Errorf("watch requires a local file: %s", location)
		}
		path = url.Path(location)
	}
	rt := a.runtime()
	aChart, err := rt.NewChart()
	if err != nil {
		return err
	}
	defer aChart.Close()

	refresh := func() error {
		rt.RefreshProcess(location)
		process, err := rt.LoadProcess(ctx, location)
		if err != nil {
			return err
		}
		result, err := rt.Transform(ctx, process)
		if err != nil {
			return err
		}
		if err = aChart.SetData(result.Elements, result.Dependencies); err != nil {
			return err
		}
		buffer := new(bytes.Buffer)
		if err = aChart.Snapshot(ctx, buffer); err != nil {
			return err
		}
		target := output
		if target == "" {
			target = process.ID + ".png"
		}
		URL, err := a.upload(ctx, target, buffer.Bytes())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s wrote %s (%d elements, %d issues)\n", time.Now().Format(time.TimeOnly), URL, len(result.Elements), len(result.Issues))
		return nil
	}
	if err = refresh(); err != nil {
		return err
	}

	watcher, err := watch.New(path)
	if err != nil {
		return err
	}
	if err = watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()
	logger := logging.Default()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-watcher.Changes:
			if !ok {
				return nil
			}
			if err := refresh(); err != nil {
				logger.Error(err, "failed to refresh timeline", "process", location)
			}
		}
	}
}
