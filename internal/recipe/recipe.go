// Package recipe reads and validates the project's native-build recipes:
// declarative manifests listing pinned third-party requirements, the
// settings axes the build resolves, the configuration files to generate and
// the directory layout convention to apply.
package recipe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/qoiview/qoiview/internal/recipe/vercmp"
)

// Requirement is a pinned third-party package, e.g. "fmt/11.1.3".
type Requirement struct {
	Name    string
	Version string
}

func (r Requirement) String() string {
	return r.Name + "/" + r.Version
}

// Recipe is the parsed manifest.
type Recipe struct {
	Path       string // file the recipe was read from, if any
	Settings   []string
	Generators []string
	Requires   []Requirement
	Options    map[string]string
	Layout     string
}

// Requirement returns the pinned requirement with the given name.
func (r *Recipe) Requirement(name string) (Requirement, bool) {
	for _, req := range r.Requires {
		if req.Name == name {
			return req, true
		}
	}
	return Requirement{}, false
}

// SortedRequires returns the requirements ordered by name.
func (r *Recipe) SortedRequires() []Requirement {
	reqs := append([]Requirement(nil), r.Requires...)
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Name < reqs[j].Name })
	return reqs
}

// Diff describes how other's requirements differ from r's. Each entry is a
// human-readable line: added, removed, upgraded or downgraded packages.
func (r *Recipe) Diff(other *Recipe) []string {
	var out []string
	for _, req := range r.SortedRequires() {
		o, ok := other.Requirement(req.Name)
		switch {
		case !ok:
			out = append(out, fmt.Sprintf("- %s", req))
		case o.Version != req.Version:
			dir := "upgraded"
			if vercmp.Compare(o.Version, req.Version) < 0 {
				dir = "downgraded"
			}
			out = append(out, fmt.Sprintf("~ %s: %s %s -> %s", req.Name, dir, req.Version, o.Version))
		}
	}
	for _, req := range other.SortedRequires() {
		if _, ok := r.Requirement(req.Name); !ok {
			out = append(out, fmt.Sprintf("+ %s", req))
		}
	}
	return out
}

// Equal reports whether two recipes pin the same requirements.
func (r *Recipe) Equal(other *Recipe) bool {
	return len(r.Diff(other)) == 0
}

// EffectiveSettings returns the declared settings axes, or all known axes
// when the recipe declares none (an empty settings section means the build
// resolves every axis).
func (r *Recipe) EffectiveSettings() []string {
	if len(r.Settings) > 0 {
		return r.Settings
	}
	return append([]string(nil), allAxes...)
}

func (r *Recipe) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "settings:   %s\n", strings.Join(r.EffectiveSettings(), ", "))
	fmt.Fprintf(&b, "generators: %s\n", strings.Join(r.Generators, ", "))
	if r.Layout != "" {
		fmt.Fprintf(&b, "layout:     %s\n", r.Layout)
	}
	b.WriteString("requires:\n")
	for _, req := range r.SortedRequires() {
		fmt.Fprintf(&b, "  %s\n", req)
	}
	if len(r.Options) > 0 {
		b.WriteString("options:\n")
		keys := make([]string, 0, len(r.Options))
		for k := range r.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s=%s\n", k, r.Options[k])
		}
	}
	return b.String()
}
