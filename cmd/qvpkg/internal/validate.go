package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qoiview/qoiview/internal/log"
	"github.com/qoiview/qoiview/internal/recipe"
)

var validateCmd = &cobra.Command{
	Use:   "validate [recipe-file]",
	Short: "Check a recipe for errors and suspicious constructs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := recipeArg(args)
		r, err := recipe.Load(file)
		if err != nil {
			return err
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		logger := log.WithComponent("validate")
		warnings := r.Warnings()
		for _, w := range warnings {
			logger.Warn().Str("recipe", file).Msg(w)
		}
		if validateStrict && len(warnings) > 0 {
			return fmt.Errorf("%s: %d warning(s) in strict mode", file, len(warnings))
		}
		fmt.Printf("%s: ok (%d requirements)\n", file, len(r.Requires))
		return nil
	},
}

var validateStrict bool

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as errors")
	rootCmd.AddCommand(validateCmd)
}
