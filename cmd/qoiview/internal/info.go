package internal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qoiview/qoiview/qoi"
)

var infoCmd = &cobra.Command{
	Use:   "info files...",
	Short: "Print header information for qoi files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var firstErr error
		for _, path := range args {
			if err := printInfo(path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		return firstErr
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	desc, err := qoi.DecodeHeader(f)
	if err != nil {
		return err
	}
	fi, err := f.Stat()
	if err != nil {
		return err
	}

	cs := "srgb"
	if desc.Colorspace == qoi.Linear {
		cs = "linear"
	}
	ratio := float64(fi.Size()) / float64(desc.PixLen()) * 100
	fmt.Printf("%s: %dx%d %s %s, %d bytes (%.1f%% of raw)\n",
		path, desc.Width, desc.Height, desc.Channels, cs, fi.Size(), ratio)
	return nil
}
