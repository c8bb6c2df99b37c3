package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/viant/flowline"
	"github.com/viant/flowline/internal/config"
)

type app struct {
	configFile string
	verbosity  int
	viper      *viper.Viper
	config     *flowline.Config
	service    *flowline.Service
	fs         afs.Service
}

// flagKeys binds persistent flags to configuration keys.
var flagKeys = map[string]string{
	"anchor": "traversal.anchor",
	"mode":   "transform.mode",
	"width":  "renderer.width",
	"height": "renderer.height",
}

func newRootCmd() *cobra.Command {
	a := &app{fs: afs.New()}
	root := &cobra.Command{
		Use:           "flowline",
		Short:         "BPMN process timelines",
		Long:          "Flowline traverses BPMN process documents and renders their planned schedule as a Gantt chart.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default flowline.yaml)")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity")
	flags.String("anchor", "", "process start time, RFC3339")
	flags.String("mode", "", "instance mode: every, earliest or latest")
	flags.Float64("width", 0, "chart width in pixels")
	flags.Float64("height", 0, "chart height in pixels")

	root.AddCommand(newRenderCmd(a), newListCmd(a), newWatchCmd(a), newConfigCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	a.viper = config.New(a.configFile)
	for name, key := range flagKeys {
		flag := cmd.Root().PersistentFlags().Lookup(name)
		if flag != nil && flag.Changed {
			if err := a.viper.BindPFlag(key, flag); err != nil {
				return err
			}
		}
	}
	if a.verbosity > 0 {
		a.viper.Set("log.verbosity", a.verbosity)
	}
	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}
	a.config = cfg
	a.service, err = flowline.NewFromConfig(cfg)
	return err
}

func (a *app) runtime() *flowline.Runtime {
	return a.service.Runtime()
}

// upload writes data to location; plain paths resolve against the working directory.
func (a *app) upload(ctx context.Context, location string, data []byte) (string, error) {
	URL := url.Normalize(location, file.Scheme)
	if err := a.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", URL, err)
	}
	return URL, nil
}
