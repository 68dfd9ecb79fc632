package layout

import (
	"path/filepath"
	"testing"

	"github.com/qoiview/qoiview/internal/settings"
)

func TestDirs(t *testing.T) {
	p := settings.Profile{OS: "Linux", Compiler: "gcc", BuildType: "Release", Arch: "x86_64"}
	l := Dirs("proj", p)

	if l.SourceDir != "proj" {
		t.Errorf("SourceDir = %q, want proj", l.SourceDir)
	}
	if want := filepath.Join("proj", "build", "Release"); l.BuildDir != want {
		t.Errorf("BuildDir = %q, want %q", l.BuildDir, want)
	}
	if want := filepath.Join("proj", "build", "Release", "generators"); l.GeneratorsDir != want {
		t.Errorf("GeneratorsDir = %q, want %q", l.GeneratorsDir, want)
	}
	if want := filepath.Join("proj", "build", "Release", "bin"); l.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", l.OutputDir, want)
	}

	p.BuildType = "Debug"
	if got := Dirs("proj", p).BuildDir; got == l.BuildDir {
		t.Error("Debug and Release should use distinct build dirs")
	}
}
