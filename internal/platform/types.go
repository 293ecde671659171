// Package platform maps the host's raw OS and machine strings to the
// target triple used in assay release asset names.
//
// Detection uses gopsutil for the host probe and falls back to the Go
// runtime's own GOOS/GOARCH when gopsutil cannot read host information.
// The triple mapping itself is a pure function over the probed strings,
// so it can be tested without touching the host at all.
package platform

import "fmt"

// Arch is a canonical CPU architecture supported by assay releases.
type Arch string

const (
	// ArchX8664 covers x86_64 and amd64 hosts.
	ArchX8664 Arch = "x86_64"
	// ArchAarch64 covers aarch64 and arm64 hosts.
	ArchAarch64 Arch = "aarch64"
)

// Family is a canonical OS family supported by assay releases.
type Family string

const (
	// FamilyLinuxGNU covers glibc-based Linux hosts.
	FamilyLinuxGNU Family = "linux-gnu"
	// FamilyMacOS covers Darwin hosts.
	FamilyMacOS Family = "macos"
	// FamilyWindowsMSVC covers Windows hosts (including MSYS/MinGW/Cygwin shells).
	FamilyWindowsMSVC Family = "windows-msvc"
)

// Probe holds the raw host strings a detector collected.
type Probe struct {
	OS      string // e.g. "linux", "darwin", "mingw64_nt-10.0"
	Machine string // e.g. "x86_64", "aarch64", "amd64"
}

// Triple identifies which prebuilt artifact to fetch for a host.
type Triple struct {
	Arch   Arch
	Family Family
}

// String renders the triple the way release asset names spell it.
func (t Triple) String() string {
	switch t.Family {
	case FamilyLinuxGNU:
		return fmt.Sprintf("%s-unknown-linux-gnu", t.Arch)
	case FamilyMacOS:
		return fmt.Sprintf("%s-apple-darwin", t.Arch)
	case FamilyWindowsMSVC:
		return fmt.Sprintf("%s-pc-windows-msvc", t.Arch)
	default:
		return fmt.Sprintf("%s-%s", t.Arch, t.Family)
	}
}

// IsWindows returns true if the triple targets Windows.
func (t Triple) IsWindows() bool {
	return t.Family == FamilyWindowsMSVC
}

// ExeSuffix returns the executable filename suffix for the triple.
func (t Triple) ExeSuffix() string {
	if t.IsWindows() {
		return ".exe"
	}
	return ""
}

// UnsupportedPlatformError reports an OS string no release exists for.
type UnsupportedPlatformError struct {
	OS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s (supported: linux, macos, windows)", e.OS)
}

// UnsupportedArchitectureError reports a machine string no release exists for.
type UnsupportedArchitectureError struct {
	Machine string
}

func (e *UnsupportedArchitectureError) Error() string {
	return fmt.Sprintf("unsupported architecture: %s (supported: x86_64, aarch64)", e.Machine)
}

// UnsupportedCombinationError reports an OS/arch pair with no published build.
type UnsupportedCombinationError struct {
	Family Family
	Arch   Arch
}

func (e *UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("unsupported combination: %s on %s (windows builds are x86_64 only)", e.Arch, e.Family)
}
