package recipe

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		recipe  Recipe
		wantErr []string // substrings, all of which must appear
	}{
		{
			name: "valid",
			recipe: Recipe{
				Requires:   []Requirement{{"fmt", "11.1.3"}, {"glfw", "3.4"}},
				Generators: []string{"CMakeToolchain", "CMakeDeps"},
				Settings:   []string{"os", "compiler", "build_type", "arch"},
				Layout:     "cmake_layout",
			},
		},
		{
			name:    "empty requires",
			recipe:  Recipe{Generators: []string{"CMakeDeps"}},
			wantErr: []string{"requires list is empty"},
		},
		{
			name: "duplicate requirement",
			recipe: Recipe{
				Requires: []Requirement{{"fmt", "11.1.3"}, {"fmt", "10.0.0"}},
			},
			wantErr: []string{"fmt declared twice"},
		},
		{
			name: "bad name and version",
			recipe: Recipe{
				Requires: []Requirement{{"Fmt", "11.1.3"}, {"glfw", "3..4/"}},
			},
			wantErr: []string{`name "Fmt" is invalid`, `invalid version`},
		},
		{
			name: "unknown setting",
			recipe: Recipe{
				Requires: []Requirement{{"fmt", "11.1.3"}},
				Settings: []string{"os", "cpu"},
			},
			wantErr: []string{`unknown setting "cpu"`},
		},
		{
			name: "duplicate setting",
			recipe: Recipe{
				Requires: []Requirement{{"fmt", "11.1.3"}},
				Settings: []string{"os", "os"},
			},
			wantErr: []string{`setting "os" declared twice`},
		},
		{
			name: "unknown generator",
			recipe: Recipe{
				Requires:   []Requirement{{"fmt", "11.1.3"}},
				Generators: []string{"MakeDeps"},
			},
			wantErr: []string{`unknown generator "MakeDeps"`},
		},
		{
			name: "unknown layout",
			recipe: Recipe{
				Requires: []Requirement{{"fmt", "11.1.3"}},
				Layout:   "meson_layout",
			},
			wantErr: []string{`unknown layout "meson_layout"`},
		},
		{
			name: "multiple problems reported together",
			recipe: Recipe{
				Settings:   []string{"flavor"},
				Generators: []string{"XcodeDeps"},
			},
			wantErr: []string{"requires list is empty", `unknown setting "flavor"`, `unknown generator "XcodeDeps"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.recipe.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %v, missing %q", err, want)
				}
			}
		})
	}
}

func TestValidate_Fixtures(t *testing.T) {
	for _, f := range []string{"conanfile_a.txt", "conanfile_b.txt", "recipe.yaml"} {
		r, err := Load(filepath.Join("testdata", f))
		if err != nil {
			t.Fatalf("Load(%s) error = %v", f, err)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("Validate(%s) = %v, want nil", f, err)
		}
		if len(r.Warnings()) != 0 {
			t.Errorf("Warnings(%s) = %v, want none", f, r.Warnings())
		}
	}
}

func TestWarnings(t *testing.T) {
	r := Recipe{
		Requires:   []Requirement{{"fmt", "11.1.3"}},
		Generators: []string{"CMakeToolchain"},
		Settings:   []string{"os"},
	}
	warns := strings.Join(r.Warnings(), "\n")
	for _, want := range []string{
		"usually requested together",
		"no layout convention",
		"settings omit compiler, build_type, arch",
	} {
		if !strings.Contains(warns, want) {
			t.Errorf("Warnings() = %q, missing %q", warns, want)
		}
	}
}
