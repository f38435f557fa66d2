package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/scene3d/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if path != "" {
				if err := cfg.SaveTo(path); err != nil {
					return err
				}
			} else {
				saved, err := cfg.Save()
				if err != nil {
					return err
				}
				path = saved
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "Write to this path instead of the user config dir")

	cmd.AddCommand(initCmd)
	return cmd
}
