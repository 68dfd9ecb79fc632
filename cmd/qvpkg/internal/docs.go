package internal

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

//go:embed docs/recipes.md
var recipeDocs string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the recipe format reference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if docsPlain || !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(recipeDocs)
			return nil
		}

		width := 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return err
		}
		out, err := r.Render(recipeDocs)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var docsPlain bool

func init() {
	docsCmd.Flags().BoolVar(&docsPlain, "plain", false, "print raw markdown without styling")
	rootCmd.AddCommand(docsCmd)
}
