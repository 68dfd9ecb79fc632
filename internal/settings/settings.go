// Package settings models the build setting axes a recipe resolves:
// os, compiler, build_type and arch.
package settings

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Axes lists the known axes in declaration order.
var Axes = []string{"os", "compiler", "build_type", "arch"}

// Values holds the allowed values per axis.
var Values = map[string][]string{
	"os":         {"Linux", "Macos", "Windows", "FreeBSD"},
	"compiler":   {"gcc", "clang", "apple-clang", "msvc"},
	"build_type": {"Debug", "Release", "RelWithDebInfo", "MinSizeRel"},
	"arch":       {"x86_64", "armv8", "x86"},
}

// Profile is one resolved value per axis.
type Profile struct {
	OS        string
	Compiler  string
	BuildType string
	Arch      string
}

// HostProfile derives a profile from the running platform, defaulting the
// compiler per OS and the build type to Release.
func HostProfile() Profile {
	p := Profile{BuildType: "Release"}

	switch runtime.GOOS {
	case "darwin":
		p.OS = "Macos"
	case "windows":
		p.OS = "Windows"
	case "freebsd":
		p.OS = "FreeBSD"
	default:
		p.OS = "Linux"
	}

	switch runtime.GOARCH {
	case "arm64":
		p.Arch = "armv8"
	case "386":
		p.Arch = "x86"
	default:
		p.Arch = "x86_64"
	}

	switch p.OS {
	case "Macos":
		p.Compiler = "apple-clang"
	case "Windows":
		p.Compiler = "msvc"
	default:
		p.Compiler = "gcc"
	}
	return p
}

// Get returns the profile's value for an axis.
func (p Profile) Get(axis string) string {
	switch axis {
	case "os":
		return p.OS
	case "compiler":
		return p.Compiler
	case "build_type":
		return p.BuildType
	case "arch":
		return p.Arch
	}
	return ""
}

// Set assigns an axis value, validating both.
func (p *Profile) Set(axis, value string) error {
	allowed, ok := Values[axis]
	if !ok {
		return fmt.Errorf("unknown setting %q (axes are %s)", axis, strings.Join(Axes, ", "))
	}
	found := false
	for _, v := range allowed {
		if v == value {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("setting %s has no value %q (one of %s)", axis, value, strings.Join(allowed, ", "))
	}
	switch axis {
	case "os":
		p.OS = value
	case "compiler":
		p.Compiler = value
	case "build_type":
		p.BuildType = value
	case "arch":
		p.Arch = value
	}
	return nil
}

// Validate checks every axis value against the allowed sets.
func (p Profile) Validate() error {
	for _, axis := range Axes {
		value := p.Get(axis)
		if value == "" {
			return fmt.Errorf("setting %s is unset", axis)
		}
		q := p // reuse Set's value check without mutating p
		if err := q.Set(axis, value); err != nil {
			return err
		}
	}
	return nil
}

// ApplyOverrides parses "axis=value" pairs (comma separated) on top of p.
func (p *Profile) ApplyOverrides(spec string) error {
	if spec == "" {
		return nil
	}
	for _, pair := range strings.Split(spec, ",") {
		axis, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return fmt.Errorf("override %q is not axis=value", pair)
		}
		if err := p.Set(strings.TrimSpace(axis), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

// String renders the profile in axis order, joined with "-".
func (p Profile) String() string {
	parts := make([]string, 0, len(Axes))
	for _, axis := range Axes {
		parts = append(parts, p.Get(axis))
	}
	return strings.Join(parts, "-")
}

// sorted returns a copy of values sorted alphabetically.
func sorted(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
