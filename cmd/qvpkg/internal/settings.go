package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qoiview/qoiview/internal/recipe"
	"github.com/qoiview/qoiview/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [recipe-file]",
	Short: "Show the setting axes a recipe resolves and their value grid",
	Long: `Settings prints the axes a recipe declares (or all known axes when
it declares none), the allowed values per axis and the host profile.
With --all it enumerates every combination of the value grid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		axes := settings.Axes
		if len(args) > 0 {
			r, err := recipe.Load(args[0])
			if err != nil {
				return err
			}
			axes = r.EffectiveSettings()
		}

		m := settings.MatrixFor(axes)
		for _, axis := range m.SortedAxes() {
			fmt.Printf("%s: %s\n", axis, strings.Join(m[axis], ", "))
		}
		fmt.Printf("host profile: %s\n", settings.HostProfile())
		fmt.Printf("combinations: %d\n", m.CombinationCount())

		if settingsAll {
			for _, c := range m.Combinations() {
				fmt.Println(c)
			}
		}
		return nil
	},
}

var settingsAll bool

func init() {
	settingsCmd.Flags().BoolVar(&settingsAll, "all", false, "list every combination of the value grid")
	rootCmd.AddCommand(settingsCmd)
}
