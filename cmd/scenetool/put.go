package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/scene3d/pkg/scenefile"
)

func newPutCmd(a *app) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "put <name> [file]",
		Short: "Store a document for redis://name sources",
		Long: `Store a scene document under a name. The document is parsed first and
rejected if it could not be built. With --delete the named document is removed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cleanup, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			name := args[0]
			if remove {
				if err := repo.Delete(cmd.Context(), name); err != nil {
					return err
				}
				a.log.Info("Deleted scene", zap.String("name", name))
				return nil
			}
			if len(args) != 2 {
				return fmt.Errorf("put %s: missing document file", name)
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading scene file: %w", err)
			}
			if _, err := scenefile.Parse(data); err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			if err := repo.Put(cmd.Context(), name, data); err != nil {
				return err
			}
			a.log.Info("Stored scene", zap.String("name", name), zap.Int("bytes", len(data)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete the named document")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cleanup, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			names, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "redis://%s\n", name)
			}
			return nil
		},
	}
}
