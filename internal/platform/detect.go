package platform

import (
	"context"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// Detector probes the host and resolves its target triple.
type Detector interface {
	Detect(ctx context.Context) (Triple, error)
}

// RealDetector implements Detector using actual host probing.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect probes the host and maps the result to a Triple.
//
// It prefers gopsutil's host information because KernelArch carries the
// raw machine string (uname -m style, e.g. "x86_64") rather than Go's
// GOARCH spelling. If gopsutil fails and the context is still live, it
// falls back to runtime.GOOS/GOARCH, which the mapping also accepts.
func (d *RealDetector) Detect(ctx context.Context) (Triple, error) {
	probe := Probe{
		OS:      runtime.GOOS,
		Machine: runtime.GOARCH,
	}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Triple{}, ctx.Err()
		}
		// Graceful fallback: the runtime strings are enough to resolve.
	} else {
		if info.OS != "" {
			probe.OS = info.OS
		}
		if info.KernelArch != "" {
			probe.Machine = info.KernelArch
		}
	}

	return Resolve(probe)
}

// Resolve maps raw host strings to a Triple.
//
// Pure: no host access, same probe always yields the same result.
func Resolve(probe Probe) (Triple, error) {
	family, err := resolveFamily(probe.OS)
	if err != nil {
		return Triple{}, err
	}

	arch, err := resolveArch(probe.Machine)
	if err != nil {
		return Triple{}, err
	}

	// Windows builds are published for x86_64 only.
	if family == FamilyWindowsMSVC && arch != ArchX8664 {
		return Triple{}, &UnsupportedCombinationError{Family: family, Arch: arch}
	}

	return Triple{Arch: arch, Family: family}, nil
}

func resolveFamily(rawOS string) (Family, error) {
	os := strings.ToLower(strings.TrimSpace(rawOS))
	switch {
	case strings.HasPrefix(os, "linux"):
		return FamilyLinuxGNU, nil
	case strings.HasPrefix(os, "darwin"):
		return FamilyMacOS, nil
	case strings.HasPrefix(os, "mingw"),
		strings.HasPrefix(os, "msys"),
		strings.HasPrefix(os, "cygwin"),
		strings.HasPrefix(os, "windows"):
		return FamilyWindowsMSVC, nil
	default:
		return "", &UnsupportedPlatformError{OS: rawOS}
	}
}

func resolveArch(rawMachine string) (Arch, error) {
	switch strings.ToLower(strings.TrimSpace(rawMachine)) {
	case "x86_64", "amd64":
		return ArchX8664, nil
	case "arm64", "aarch64":
		return ArchAarch64, nil
	default:
		return "", &UnsupportedArchitectureError{Machine: rawMachine}
	}
}
