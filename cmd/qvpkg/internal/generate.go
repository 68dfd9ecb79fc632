package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/qoiview/qoiview/internal/gencmake"
	"github.com/qoiview/qoiview/internal/layout"
	"github.com/qoiview/qoiview/internal/log"
	"github.com/qoiview/qoiview/internal/recipe"
	"github.com/qoiview/qoiview/internal/settings"
	"github.com/qoiview/qoiview/internal/watch"
)

var generateCmd = &cobra.Command{
	Use:   "generate [recipe-file]",
	Short: "Emit the toolchain and dependency files a recipe requests",
	Long: `Generate reads a recipe, resolves the build profile (host defaults
plus --profile overrides) and writes the files its generators request
into the layout's generators directory. With --watch it keeps running
and regenerates whenever the recipe changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := recipeArg(args)

		profile := settings.HostProfile()
		if err := profile.ApplyOverrides(generateProfile); err != nil {
			return err
		}

		if !generateWatch {
			return generateOnce(file, profile)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := generateOnce(file, profile); err != nil {
			// keep watching; the next edit may fix the recipe
			logger := log.WithComponent("generate")
			logger.Error().Err(err).Msg("generate failed")
		}
		err := watch.File(ctx, file, func() error {
			return generateOnce(file, profile)
		})
		if err == context.Canceled {
			return nil
		}
		return err
	},
}

var (
	generateProfile string
	generateWatch   bool
	generateRoot    string
)

func init() {
	generateCmd.Flags().StringVarP(&generateProfile, "profile", "p", "", "profile overrides, axis=value pairs (e.g. build_type=Debug,arch=x86)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "regenerate whenever the recipe file changes")
	generateCmd.Flags().StringVar(&generateRoot, "root", "", "project root for the layout (default: the recipe's directory)")
	rootCmd.AddCommand(generateCmd)
}

func generateOnce(file string, profile settings.Profile) error {
	r, err := recipe.Load(file)
	if err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	logger := log.WithComponent("generate")
	for _, w := range r.Warnings() {
		logger.Warn().Str("recipe", file).Msg(w)
	}

	root := generateRoot
	if root == "" {
		root = filepath.Dir(file)
	}
	l := layout.Dirs(root, profile)

	g := gencmake.Generator{Recipe: r, Profile: profile, Layout: l}
	written, err := g.Emit()
	if err != nil {
		return err
	}
	for _, path := range written {
		logger.Info().Str("file", path).Msg("wrote")
	}
	fmt.Printf("generated %d file(s) for %s in %s\n", len(written), profile, l.GeneratorsDir)
	return nil
}
