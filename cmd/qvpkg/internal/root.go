package internal

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/qoiview/qoiview/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "qvpkg",
	Short: "qvpkg works with the project's native-build recipes",
	Long: `qvpkg reads the declarative build recipes of the qoiview project:
it validates their requirements, settings and generators, computes the
build directory layout and emits the configuration files the recipes
request for an external CMake setup.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Configure(log.Config{Level: logLevel})
	},
}

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// recipeArg resolves the optional positional recipe path, defaulting to the
// text-form manifest in the current directory.
func recipeArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "conanfile.txt"
}
