package settings

import (
	"reflect"
	"strings"
	"testing"
)

func TestHostProfile(t *testing.T) {
	p := HostProfile()
	if err := p.Validate(); err != nil {
		t.Fatalf("HostProfile().Validate() = %v, want nil", err)
	}
	if p.BuildType != "Release" {
		t.Errorf("HostProfile().BuildType = %q, want Release", p.BuildType)
	}
}

func TestProfileSet(t *testing.T) {
	p := HostProfile()

	if err := p.Set("build_type", "Debug"); err != nil {
		t.Fatalf("Set(build_type, Debug) = %v", err)
	}
	if p.BuildType != "Debug" {
		t.Errorf("BuildType = %q, want Debug", p.BuildType)
	}

	if err := p.Set("cpu", "fast"); err == nil || !strings.Contains(err.Error(), "unknown setting") {
		t.Errorf("Set(cpu, fast) = %v, want unknown setting error", err)
	}
	if err := p.Set("os", "TempleOS"); err == nil || !strings.Contains(err.Error(), "no value") {
		t.Errorf("Set(os, TempleOS) = %v, want no value error", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	p := HostProfile()
	if err := p.ApplyOverrides("build_type=Debug, arch=armv8"); err != nil {
		t.Fatalf("ApplyOverrides() = %v", err)
	}
	if p.BuildType != "Debug" || p.Arch != "armv8" {
		t.Errorf("profile after overrides = %+v", p)
	}

	if err := p.ApplyOverrides("build_type"); err == nil {
		t.Error("ApplyOverrides(build_type) = nil, want error")
	}
	if err := p.ApplyOverrides(""); err != nil {
		t.Errorf("ApplyOverrides(\"\") = %v, want nil", err)
	}
}

func TestProfileString(t *testing.T) {
	p := Profile{OS: "Linux", Compiler: "gcc", BuildType: "Release", Arch: "x86_64"}
	if got, want := p.String(), "Linux-gcc-Release-x86_64"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMatrix_Combinations(t *testing.T) {
	tests := []struct {
		name   string
		matrix Matrix
		want   []string
	}{
		{
			name:   "single axis",
			matrix: Matrix{"build_type": {"Debug", "Release"}},
			want:   []string{"Debug", "Release"},
		},
		{
			name: "two axes, keys sorted",
			matrix: Matrix{
				"os":   {"Linux", "Macos"},
				"arch": {"x86_64", "armv8"},
			},
			want: []string{"x86_64-Linux", "x86_64-Macos", "armv8-Linux", "armv8-Macos"},
		},
		{
			name:   "empty",
			matrix: Matrix{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.matrix.Combinations()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Combinations() = %v, want %v", got, tt.want)
			}
			wantCount := len(tt.want)
			if got := tt.matrix.CombinationCount(); got != wantCount {
				t.Errorf("CombinationCount() = %d, want %d", got, wantCount)
			}
		})
	}
}

func TestMatrixFor(t *testing.T) {
	m := MatrixFor([]string{"os", "build_type"})
	if got := m.CombinationCount(); got != len(Values["os"])*len(Values["build_type"]) {
		t.Errorf("CombinationCount() = %d", got)
	}
	if got := m.SortedAxes(); !reflect.DeepEqual(got, []string{"build_type", "os"}) {
		t.Errorf("SortedAxes() = %v", got)
	}

	full := MatrixFor(Axes)
	if got, want := full.CombinationCount(), 4*4*4*3; got != want {
		t.Errorf("full grid = %d combinations, want %d", got, want)
	}
}
