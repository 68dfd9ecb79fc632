package internal

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/qoiview/qoiview/internal/log"
)

// Version is stamped by the build.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "qoiview [flags] files...",
	Short: "A terminal viewer for qoi images",
	Long: `qoiview shows qoi images in the terminal using truecolor half-block
cells, decoding in the background so large images appear progressively.

Given a directory it cycles through every qoi file inside; given a
single file it cycles through the file's directory starting there;
given several files it cycles through those.

Keys: arrows left/right switch image, h/j/k/l pan, i/o zoom,
n toggles the sampling filter, r resets the view, p prints the
current path, q or ctrl-c quits.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Configure(log.Config{Level: logLevel})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runView(args, singleMode)
	},
}

var (
	logLevel   string
	singleMode bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&singleMode, "single", "s", false, "view only the given file, without its siblings")
}

// Execute runs the viewer. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger := log.Base()
		logger.Error().Msg(err.Error())
		os.Exit(1)
	}
}
