package gencmake

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qoiview/qoiview/internal/layout"
	"github.com/qoiview/qoiview/internal/recipe"
	"github.com/qoiview/qoiview/internal/settings"
)

func testRecipe() *recipe.Recipe {
	return &recipe.Recipe{
		Generators: []string{"CMakeToolchain", "CMakeDeps"},
		Requires: []recipe.Requirement{
			{Name: "fmt", Version: "11.1.3"},
			{Name: "glfw", Version: "3.4"},
		},
		Options: map[string]string{"glfw:shared": "False"},
		Layout:  "cmake_layout",
	}
}

func testProfile() settings.Profile {
	return settings.Profile{OS: "Linux", Compiler: "gcc", BuildType: "Release", Arch: "x86_64"}
}

func TestEmit(t *testing.T) {
	root := t.TempDir()
	p := testProfile()
	g := &Generator{Recipe: testRecipe(), Profile: p, Layout: layout.Dirs(root, p)}

	written, err := g.Emit()
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	gendir := filepath.Join(root, "build", "Release", "generators")
	wantFiles := []string{
		filepath.Join(gendir, "conan_toolchain.cmake"),
		filepath.Join(gendir, "conandeps_legacy.cmake"),
		filepath.Join(gendir, "fmt-config.cmake"),
		filepath.Join(gendir, "glfw-config.cmake"),
	}
	if len(written) != len(wantFiles) {
		t.Fatalf("Emit() wrote %v, want %v", written, wantFiles)
	}
	for i, want := range wantFiles {
		if written[i] != want {
			t.Errorf("written[%d] = %q, want %q", i, written[i], want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Errorf("missing emitted file: %v", err)
		}
	}
}

func TestToolchainContent(t *testing.T) {
	root := t.TempDir()
	p := testProfile()
	p.BuildType = "Debug"
	g := &Generator{Recipe: testRecipe(), Profile: p, Layout: layout.Dirs(root, p)}

	if _, err := g.Emit(); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(g.Layout.GeneratorsDir, ToolchainFile))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		`set(CMAKE_BUILD_TYPE "Debug"`,
		"set(CMAKE_CXX_STANDARD 20)",
		"CMAKE_POSITION_INDEPENDENT_CODE ON",
		"list(PREPEND CMAKE_PREFIX_PATH",
		`set(GLFW_SHARED "False"`,
		"Linux-gcc-Debug-x86_64",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("toolchain missing %q\n%s", want, content)
		}
	}
	if strings.Contains(content, "-m32") {
		t.Error("x86_64 toolchain should not force -m32")
	}
}

func TestDepConfigContent(t *testing.T) {
	content := string(renderDepConfig(recipe.Requirement{Name: "fmt", Version: "11.1.3"}))

	for _, want := range []string{
		`set(fmt_VERSION "11.1.3")`,
		"set(fmt_FOUND TRUE)",
		"add_library(fmt::fmt INTERFACE IMPORTED)",
		"target_include_directories(fmt::fmt",
		`set(fmt_PKGCONFIG_DIRS "${fmt_ROOT}/lib/pkgconfig")`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("dep config missing %q\n%s", want, content)
		}
	}
}

func TestAggregateIncludesEveryRequirement(t *testing.T) {
	root := t.TempDir()
	p := testProfile()
	g := &Generator{Recipe: testRecipe(), Profile: p, Layout: layout.Dirs(root, p)}

	if _, err := g.Emit(); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(g.Layout.GeneratorsDir, DepsAggregateFile))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"fmt-config.cmake", "glfw-config.cmake", "CONANDEPS_LEGACY fmt::fmt glfw::glfw"} {
		if !strings.Contains(content, want) {
			t.Errorf("aggregate missing %q", want)
		}
	}
}

func TestEmitUnknownGenerator(t *testing.T) {
	root := t.TempDir()
	p := testProfile()
	r := testRecipe()
	r.Generators = []string{"NinjaDeps"}
	g := &Generator{Recipe: r, Profile: p, Layout: layout.Dirs(root, p)}

	if _, err := g.Emit(); err == nil || !strings.Contains(err.Error(), "no emitter") {
		t.Errorf("Emit() error = %v, want no emitter error", err)
	}
}
