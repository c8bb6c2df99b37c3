package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/flowline/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var format string
	var keys bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keys {
				for _, key := range config.Keys() {
					fmt.Fprintln(cmd.OutOrStdout(), key)
				}
				return nil
			}
			data, err := config.Marshal(a.config, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, yaml or json")
	cmd.Flags().BoolVar(&keys, "keys", false, "list configuration keys")
	return cmd
}
