// Package gencmake emits the build-configuration files a recipe requests:
// a toolchain file describing the chosen profile and one find_package
// config per pinned requirement. The files are consumed by an external
// CMake run; nothing here executes a build.
package gencmake

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/qoiview/qoiview/internal/layout"
	"github.com/qoiview/qoiview/internal/recipe"
	"github.com/qoiview/qoiview/internal/settings"
)

// ToolchainFile is the name of the emitted toolchain description.
const ToolchainFile = "conan_toolchain.cmake"

// DepsAggregateFile is the emitted aggregator that pulls in every
// per-requirement config.
const DepsAggregateFile = "conandeps_legacy.cmake"

// Generator renders the files a validated recipe requests for one profile.
type Generator struct {
	Recipe  *recipe.Recipe
	Profile settings.Profile
	Layout  layout.Layout
}

// Emit writes all requested generator files into the layout's generators
// directory, atomically and durably, and returns the written paths.
func (g *Generator) Emit() ([]string, error) {
	if err := os.MkdirAll(g.Layout.GeneratorsDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, gen := range g.Recipe.Generators {
		switch gen {
		case "CMakeToolchain":
			path := filepath.Join(g.Layout.GeneratorsDir, ToolchainFile)
			if err := write(path, g.renderToolchain()); err != nil {
				return written, err
			}
			written = append(written, path)
		case "CMakeDeps":
			paths, err := g.emitDeps()
			written = append(written, paths...)
			if err != nil {
				return written, err
			}
		default:
			return written, fmt.Errorf("no emitter for generator %q", gen)
		}
	}
	sort.Strings(written)
	return written, nil
}

func (g *Generator) renderToolchain() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", ToolchainFile)
	fmt.Fprintf(&b, "# Generated for profile %s. Do not edit.\n\n", g.Profile)
	b.WriteString("include_guard()\n\n")

	fmt.Fprintf(&b, "set(CMAKE_BUILD_TYPE %q CACHE STRING \"Build type\")\n", g.Profile.BuildType)
	b.WriteString("set(CMAKE_CXX_STANDARD 20)\n")
	b.WriteString("set(CMAKE_CXX_STANDARD_REQUIRED ON)\n")
	b.WriteString("set(CMAKE_POSITION_INDEPENDENT_CODE ON)\n")
	b.WriteString("set(CMAKE_FIND_PACKAGE_PREFER_CONFIG ON)\n\n")

	// Make the emitted per-requirement configs discoverable.
	b.WriteString("list(PREPEND CMAKE_PREFIX_PATH \"${CMAKE_CURRENT_LIST_DIR}\")\n")
	b.WriteString("list(PREPEND CMAKE_MODULE_PATH \"${CMAKE_CURRENT_LIST_DIR}\")\n\n")

	switch g.Profile.Arch {
	case "x86":
		b.WriteString("string(APPEND CMAKE_C_FLAGS_INIT \" -m32\")\n")
		b.WriteString("string(APPEND CMAKE_CXX_FLAGS_INIT \" -m32\")\n")
	}
	if g.Profile.Compiler == "msvc" {
		b.WriteString("cmake_policy(SET CMP0091 NEW)\n")
		b.WriteString("set(CMAKE_MSVC_RUNTIME_LIBRARY \"MultiThreaded$<$<CONFIG:Debug>:Debug>DLL\")\n")
	}

	if len(g.Recipe.Options) > 0 {
		b.WriteString("\n# Recipe options\n")
		keys := make([]string, 0, len(g.Recipe.Options))
		for k := range g.Recipe.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "set(%s %q CACHE STRING \"Recipe option\")\n", optionVar(k), g.Recipe.Options[k])
		}
	}
	return []byte(b.String())
}

// optionVar maps an option key like "glfw:shared" to a cache variable name.
func optionVar(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		case c >= 'A' && c <= 'Z' || c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (g *Generator) emitDeps() ([]string, error) {
	var written []string
	targets := make([]string, 0, len(g.Recipe.Requires))

	for _, req := range g.Recipe.SortedRequires() {
		path := filepath.Join(g.Layout.GeneratorsDir, req.Name+"-config.cmake")
		if err := write(path, renderDepConfig(req)); err != nil {
			return written, err
		}
		written = append(written, path)
		targets = append(targets, req.Name+"::"+req.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n# Generated. Do not edit.\n\n", DepsAggregateFile)
	for _, req := range g.Recipe.SortedRequires() {
		fmt.Fprintf(&b, "include(\"${CMAKE_CURRENT_LIST_DIR}/%s-config.cmake\")\n", req.Name)
	}
	fmt.Fprintf(&b, "\nset(CONANDEPS_LEGACY %s)\n", strings.Join(targets, " "))

	path := filepath.Join(g.Layout.GeneratorsDir, DepsAggregateFile)
	if err := write(path, []byte(b.String())); err != nil {
		return written, err
	}
	return append(written, path), nil
}

// renderDepConfig emits the find_package(<name>) entry point for one pinned
// requirement. Include and library hints follow the conventional
// include/lib layout under the dependency's install root.
func renderDepConfig(req recipe.Requirement) []byte {
	n := req.Name
	var b strings.Builder
	fmt.Fprintf(&b, "# %s-config.cmake for %s. Generated. Do not edit.\n\n", n, req)
	fmt.Fprintf(&b, "if(TARGET %s::%s)\n  return()\nendif()\n\n", n, n)
	fmt.Fprintf(&b, "set(%s_VERSION %q)\n", n, req.Version)
	fmt.Fprintf(&b, "set(%s_FOUND TRUE)\n\n", n)
	fmt.Fprintf(&b, "if(NOT DEFINED %s_ROOT)\n", n)
	fmt.Fprintf(&b, "  set(%s_ROOT \"${CMAKE_CURRENT_LIST_DIR}/../../../deps/%s\")\n", n, n)
	b.WriteString("endif()\n\n")
	fmt.Fprintf(&b, "set(%s_INCLUDE_DIRS \"${%s_ROOT}/include\")\n", n, n)
	fmt.Fprintf(&b, "set(%s_LIB_DIRS \"${%s_ROOT}/lib\")\n", n, n)
	fmt.Fprintf(&b, "set(%s_PKGCONFIG_DIRS \"${%s_ROOT}/lib/pkgconfig\")\n\n", n, n)
	fmt.Fprintf(&b, "add_library(%s::%s INTERFACE IMPORTED)\n", n, n)
	fmt.Fprintf(&b, "target_include_directories(%s::%s INTERFACE \"${%s_INCLUDE_DIRS}\")\n", n, n, n)
	fmt.Fprintf(&b, "target_link_directories(%s::%s INTERFACE \"${%s_LIB_DIRS}\")\n", n, n, n)
	return []byte(b.String())
}

// write lands data at path atomically: temp file, fsync, rename.
func write(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
