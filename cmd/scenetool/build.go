package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/scene3d/internal/scene"
)

func newBuildCmd(a *app) *cobra.Command {
	var outDir string
	var compact bool

	cmd := &cobra.Command{
		Use:   "build <src>...",
		Short: "Build scene geometry as JSON",
		Long: `Build one or more documents. With a single source and no --out the scene is
written to stdout; otherwise each source is written to <out>/<name>.scene.json.
A failing source does not stop the others; all failures are reported at the end.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, cleanup := a.loader(cmd.Context(), a.cfg.Source.Root)
			defer cleanup()
			opts := a.options()

			if len(args) == 1 && outDir == "" {
				s, err := loader.Load(cmd.Context(), args[0], opts)
				if err != nil {
					return err
				}
				return writeScene(cmd.OutOrStdout(), s, compact)
			}

			if outDir == "" {
				outDir = "."
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}

			var errs error
			for _, src := range args {
				s, err := loader.Load(cmd.Context(), src, opts)
				if err != nil {
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", src, err))
					continue
				}
				path := filepath.Join(outDir, outputName(src))
				if err := writeSceneFile(path, s, compact); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", src, err))
					continue
				}
				a.log.Info("Wrote scene", zap.String("src", src), zap.String("path", path))
			}
			return errs
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory")
	cmd.Flags().BoolVar(&compact, "compact", false, "Write compact JSON")
	return cmd
}

// outputName derives "<name>.scene.json" from a source reference.
func outputName(src string) string {
	base := src
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = "scene"
	}
	return base + ".scene.json"
}

func writeScene(w io.Writer, s *scene.Scene, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(s)
}

func writeSceneFile(path string, s *scene.Scene, compact bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeScene(f, s, compact); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
