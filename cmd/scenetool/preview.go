package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/scene3d/internal/preview"
)

func newPreviewCmd(a *app) *cobra.Command {
	var out string
	var ppm float64

	cmd := &cobra.Command{
		Use:   "preview <src>",
		Short: "Render a top-down PNG of a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, cleanup := a.loader(cmd.Context(), a.cfg.Source.Root)
			defer cleanup()

			s, err := loader.Load(cmd.Context(), args[0], a.options())
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("ppm") {
				ppm = a.cfg.Preview.PixelsPerMeter
			}
			r := preview.NewRenderer(ppm)

			if out == "" || out == "-" {
				return r.Encode(cmd.OutOrStdout(), s)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating file: %w", err)
			}
			if err := r.Encode(f, s); err != nil {
				f.Close()
				return err
			}
			a.log.Info("Wrote preview", zap.String("path", out))
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PNG path (default stdout)")
	cmd.Flags().Float64Var(&ppm, "ppm", 0, "Pixels per meter")
	return cmd
}
