package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ShellType represents a recognized login shell.
type ShellType string

const (
	// ShellBash represents the Bash shell
	ShellBash ShellType = "bash"
	// ShellZsh represents the Z shell
	ShellZsh ShellType = "zsh"
	// ShellFish represents the Fish shell
	ShellFish ShellType = "fish"
	// ShellUnknown represents an unknown or unsupported shell
	ShellUnknown ShellType = "unknown"
)

// DetectShell detects the user's shell using multiple methods
func DetectShell() ShellType {
	// Method 1: $SHELL environment variable (most reliable)
	if shell := parseShellFromPath(os.Getenv("SHELL")); shell != ShellUnknown {
		return shell
	}

	// Method 2: parent process name, via gopsutil for cross-platform
	// support. Best effort; detection failures fall through.
	if parent, err := process.NewProcess(int32(os.Getppid())); err == nil {
		if name, err := parent.Name(); err == nil {
			if shell := parseShellFromPath(name); shell != ShellUnknown {
				return shell
			}
		}
	}

	return ShellUnknown
}

func parseShellFromPath(path string) ShellType {
	switch strings.TrimSuffix(filepath.Base(path), ".exe") {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	default:
		return ShellUnknown
	}
}

// RCFile returns the config file the PATH line belongs in. Unknown
// shells get the POSIX-ish ~/.profile.
func RCFile(shell ShellType) string {
	switch shell {
	case ShellZsh:
		return "~/.zshrc"
	case ShellFish:
		return "~/.config/fish/config.fish"
	case ShellBash:
		return "~/.bashrc"
	default:
		return "~/.profile"
	}
}

// ExportLine returns the exact shell-config line that puts dir on PATH.
func ExportLine(shell ShellType, dir string) string {
	if shell == ShellFish {
		return fmt.Sprintf("fish_add_path %s", dir)
	}
	return fmt.Sprintf(`export PATH="%s:$PATH"`, dir)
}

// OnPath reports whether dir appears in the given PATH value.
func OnPath(dir, pathEnv string) bool {
	clean := filepath.Clean(dir)
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry != "" && filepath.Clean(entry) == clean {
			return true
		}
	}
	return false
}
