// Package layout computes the cmake_layout directory convention: build
// outputs and generated configuration land in predictable subdirectories of
// the source tree, keyed by build type.
package layout

import (
	"path/filepath"

	"github.com/qoiview/qoiview/internal/settings"
)

// Layout is the resolved directory set for one build configuration.
type Layout struct {
	SourceDir     string // project sources
	BuildDir      string // per-build-type build tree
	GeneratorsDir string // where generated toolchain/deps files go
	OutputDir     string // built binaries
}

// Dirs resolves the cmake_layout convention rooted at root for profile p.
func Dirs(root string, p settings.Profile) Layout {
	build := filepath.Join(root, "build", p.BuildType)
	return Layout{
		SourceDir:     root,
		BuildDir:      build,
		GeneratorsDir: filepath.Join(build, "generators"),
		OutputDir:     filepath.Join(build, "bin"),
	}
}
