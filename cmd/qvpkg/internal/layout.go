package internal

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qoiview/qoiview/internal/layout"
	"github.com/qoiview/qoiview/internal/recipe"
	"github.com/qoiview/qoiview/internal/settings"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [recipe-file]",
	Short: "Print the build directory layout a recipe resolves to",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := recipeArg(args)
		r, err := recipe.Load(file)
		if err != nil {
			return err
		}
		if r.Layout == "" {
			return fmt.Errorf("%s: recipe declares no layout", file)
		}

		profile := settings.HostProfile()
		if err := profile.ApplyOverrides(layoutProfile); err != nil {
			return err
		}

		root := layoutRoot
		if root == "" {
			root = filepath.Dir(file)
		}
		l := layout.Dirs(root, profile)

		fmt.Printf("layout:     %s\n", r.Layout)
		fmt.Printf("profile:    %s\n", profile)
		fmt.Printf("source:     %s\n", l.SourceDir)
		fmt.Printf("build:      %s\n", l.BuildDir)
		fmt.Printf("generators: %s\n", l.GeneratorsDir)
		fmt.Printf("output:     %s\n", l.OutputDir)
		return nil
	},
}

var (
	layoutProfile string
	layoutRoot    string
)

func init() {
	layoutCmd.Flags().StringVarP(&layoutProfile, "profile", "p", "", "profile overrides, axis=value pairs")
	layoutCmd.Flags().StringVar(&layoutRoot, "root", "", "project root for the layout (default: the recipe's directory)")
	rootCmd.AddCommand(layoutCmd)
}
