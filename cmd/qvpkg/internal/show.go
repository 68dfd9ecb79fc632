package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qoiview/qoiview/internal/recipe"
)

var showCmd = &cobra.Command{
	Use:   "show [recipe-file]",
	Short: "Print a recipe's requirements, settings and generators",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := recipe.Load(recipeArg(args))
		if err != nil {
			return err
		}
		fmt.Print(r)

		if showCompare == "" {
			return nil
		}
		other, err := recipe.Load(showCompare)
		if err != nil {
			return err
		}
		diff := r.Diff(other)
		if len(diff) == 0 {
			fmt.Printf("\nno requirement changes against %s\n", showCompare)
			return nil
		}
		fmt.Printf("\nrequirement changes against %s:\n", showCompare)
		for _, line := range diff {
			fmt.Println("  " + line)
		}
		return nil
	},
}

var showCompare string

func init() {
	showCmd.Flags().StringVar(&showCompare, "compare", "", "second recipe to diff the requirements against")
	rootCmd.AddCommand(showCmd)
}
