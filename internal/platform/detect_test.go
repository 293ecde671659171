package platform

import (
	"context"
	"errors"
	"testing"
)

func TestResolveSupportedPairs(t *testing.T) {
	tests := []struct {
		name    string
		probe   Probe
		want    string
		windows bool
	}{
		{
			name:  "linux_x86_64",
			probe: Probe{OS: "linux", Machine: "x86_64"},
			want:  "x86_64-unknown-linux-gnu",
		},
		{
			name:  "linux_amd64_alias",
			probe: Probe{OS: "linux", Machine: "amd64"},
			want:  "x86_64-unknown-linux-gnu",
		},
		{
			name:  "linux_aarch64",
			probe: Probe{OS: "linux", Machine: "aarch64"},
			want:  "aarch64-unknown-linux-gnu",
		},
		{
			name:  "linux_arm64_alias",
			probe: Probe{OS: "linux", Machine: "arm64"},
			want:  "aarch64-unknown-linux-gnu",
		},
		{
			name:  "darwin_x86_64",
			probe: Probe{OS: "darwin", Machine: "x86_64"},
			want:  "x86_64-apple-darwin",
		},
		{
			name:  "darwin_arm64",
			probe: Probe{OS: "darwin", Machine: "arm64"},
			want:  "aarch64-apple-darwin",
		},
		{
			name:    "mingw_x86_64",
			probe:   Probe{OS: "MINGW64_NT-10.0", Machine: "x86_64"},
			want:    "x86_64-pc-windows-msvc",
			windows: true,
		},
		{
			name:    "msys_x86_64",
			probe:   Probe{OS: "msys_nt-10.0", Machine: "x86_64"},
			want:    "x86_64-pc-windows-msvc",
			windows: true,
		},
		{
			name:    "cygwin_x86_64",
			probe:   Probe{OS: "cygwin_nt-10.0", Machine: "x86_64"},
			want:    "x86_64-pc-windows-msvc",
			windows: true,
		},
		{
			name:    "go_windows_x86_64",
			probe:   Probe{OS: "windows", Machine: "amd64"},
			want:    "x86_64-pc-windows-msvc",
			windows: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triple, err := Resolve(tt.probe)
			if err != nil {
				t.Fatalf("Resolve(%+v) failed: %v", tt.probe, err)
			}
			if got := triple.String(); got != tt.want {
				t.Errorf("triple mismatch:\ngot:  %s\nwant: %s", got, tt.want)
			}
			if triple.IsWindows() != tt.windows {
				t.Errorf("IsWindows() = %v, want %v", triple.IsWindows(), tt.windows)
			}
		})
	}
}

func TestResolveUnsupported(t *testing.T) {
	var platformErr *UnsupportedPlatformError
	var archErr *UnsupportedArchitectureError
	var comboErr *UnsupportedCombinationError

	tests := []struct {
		name   string
		probe  Probe
		target any
	}{
		{
			name:   "unknown_os",
			probe:  Probe{OS: "freebsd", Machine: "x86_64"},
			target: &platformErr,
		},
		{
			name:   "unknown_arch",
			probe:  Probe{OS: "linux", Machine: "riscv64"},
			target: &archErr,
		},
		{
			name:   "empty_os",
			probe:  Probe{OS: "", Machine: "x86_64"},
			target: &platformErr,
		},
		{
			name:   "windows_on_arm",
			probe:  Probe{OS: "mingw64_nt-10.0", Machine: "aarch64"},
			target: &comboErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.probe)
			if err == nil {
				t.Fatalf("Resolve(%+v) succeeded, want error", tt.probe)
			}
			if !errors.As(err, tt.target) {
				t.Errorf("error type mismatch: got %T (%v)", err, err)
			}
		})
	}
}

func TestResolveOSCheckedBeforeArch(t *testing.T) {
	// Both strings are bad; the OS error must win so diagnostics point at
	// the first unsupported input.
	_, err := Resolve(Probe{OS: "plan9", Machine: "mips"})
	var platformErr *UnsupportedPlatformError
	if !errors.As(err, &platformErr) {
		t.Errorf("got %T (%v), want *UnsupportedPlatformError", err, err)
	}
}

func TestExeSuffix(t *testing.T) {
	win := Triple{Arch: ArchX8664, Family: FamilyWindowsMSVC}
	if win.ExeSuffix() != ".exe" {
		t.Errorf("windows ExeSuffix() = %q, want .exe", win.ExeSuffix())
	}
	lin := Triple{Arch: ArchX8664, Family: FamilyLinuxGNU}
	if lin.ExeSuffix() != "" {
		t.Errorf("linux ExeSuffix() = %q, want empty", lin.ExeSuffix())
	}
}

func TestDetectOnThisHost(t *testing.T) {
	// The CI hosts this runs on are all in the supported matrix, so a
	// real probe should resolve cleanly.
	triple, err := NewDetector().Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if triple.Arch == "" || triple.Family == "" {
		t.Errorf("incomplete triple: %+v", triple)
	}
}
