package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// allAxes is the fixed set of setting axes a recipe may declare.
var allAxes = []string{"os", "compiler", "build_type", "arch"}

// knownGenerators are the configuration files an external build setup can be
// asked to produce.
var knownGenerators = map[string]bool{
	"CMakeToolchain": true,
	"CMakeDeps":      true,
}

// knownLayouts are the supported directory layout conventions.
var knownLayouts = map[string]bool{
	"cmake_layout": true,
}

// Validate checks the recipe against the manifest rules and returns every
// violation joined into a single error.
func (r *Recipe) Validate() error {
	var errs []error

	if len(r.Requires) == 0 {
		errs = append(errs, errors.New("requires list is empty"))
	}
	seen := map[string]bool{}
	for _, req := range r.Requires {
		if !validName(req.Name) {
			errs = append(errs, fmt.Errorf("requirement name %q is invalid", req.Name))
		}
		if !validVersion(req.Version) {
			errs = append(errs, fmt.Errorf("requirement %s pins invalid version %q", req.Name, req.Version))
		}
		if seen[req.Name] {
			errs = append(errs, fmt.Errorf("requirement %s declared twice", req.Name))
		}
		seen[req.Name] = true
	}

	axisSeen := map[string]bool{}
	for _, s := range r.Settings {
		if !isAxis(s) {
			errs = append(errs, fmt.Errorf("unknown setting %q (axes are %s)", s, strings.Join(allAxes, ", ")))
			continue
		}
		if axisSeen[s] {
			errs = append(errs, fmt.Errorf("setting %q declared twice", s))
		}
		axisSeen[s] = true
	}

	genSeen := map[string]bool{}
	for _, g := range r.Generators {
		if !knownGenerators[g] {
			errs = append(errs, fmt.Errorf("unknown generator %q", g))
			continue
		}
		if genSeen[g] {
			errs = append(errs, fmt.Errorf("generator %q requested twice", g))
		}
		genSeen[g] = true
	}

	if r.Layout != "" && !knownLayouts[r.Layout] {
		errs = append(errs, fmt.Errorf("unknown layout %q", r.Layout))
	}

	return errors.Join(errs...)
}

// Warnings reports advisory findings that do not make the recipe invalid.
func (r *Recipe) Warnings() []string {
	var warns []string

	gens := map[string]bool{}
	for _, g := range r.Generators {
		gens[g] = true
	}
	if gens["CMakeToolchain"] != gens["CMakeDeps"] {
		warns = append(warns, "CMakeToolchain and CMakeDeps are usually requested together")
	}
	if len(r.Generators) == 0 {
		warns = append(warns, "no generators requested; nothing will be emitted for the build setup")
	}
	if r.Layout == "" {
		warns = append(warns, "no layout convention; build outputs land in the source tree")
	}
	if len(r.Settings) > 0 && len(r.Settings) < len(allAxes) {
		missing := []string{}
		for _, a := range allAxes {
			if !contains(r.Settings, a) {
				missing = append(missing, a)
			}
		}
		warns = append(warns, fmt.Sprintf("settings omit %s; those axes will not vary the build", strings.Join(missing, ", ")))
	}
	return warns
}

func isAxis(s string) bool {
	return contains(allAxes, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// validName accepts the package naming convention used by pins: lowercase
// alphanumerics with '.', '_' or '-' separators.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
			if i == 0 || i == len(s)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// validVersion accepts pinned versions like "3.4", "11.1.3" and date pins
// like "cci.20200529".
func validVersion(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-' || c == '+':
			if i == 0 || i == len(s)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
