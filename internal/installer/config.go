// Package installer wires the pipeline stages together: detect platform,
// resolve version, locate artifact, fetch, verify, extract, install,
// report.
//
// Configuration is an explicit struct. FromEnv populates it from the
// environment overrides the installer documents; nothing in the pipeline
// reads process-global state after that point.
package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Rul1an/getassay-site/internal/artifact"
	"github.com/Rul1an/getassay-site/internal/platform"
	"github.com/Rul1an/getassay-site/internal/release"
)

// Environment overrides recognized by the installer.
const (
	// EnvVersion overrides the release tag to install (default "latest").
	EnvVersion = "ASSAY_VERSION"
	// EnvInstallDir overrides the destination directory (default ~/.local/bin).
	EnvInstallDir = "ASSAY_INSTALL_DIR"
	// EnvKeyring points at an OpenPGP keyring used to verify release
	// signatures. Unset means signature verification is skipped.
	EnvKeyring = "ASSAY_GPG_KEYRING"
)

// Release publishing defaults for assay.
const (
	DefaultHost   = "https://github.com"
	DefaultSlug   = "Rul1an/assay"
	DefaultBinary = "assay"
)

// Config carries everything one installation run needs.
type Config struct {
	// Version is the release tag to install, or release.Latest.
	Version string
	// InstallDir is where the binary lands.
	InstallDir string
	// Repo identifies the release host, slug, and binary name.
	Repo artifact.Repo
	// APIBase is the release metadata endpoint base.
	APIBase string
	// KeyringPath enables signature verification when non-empty.
	KeyringPath string
	// Probe overrides host detection when non-nil (tests).
	Probe *platform.Probe
	// Out and ErrOut receive reporter output; nil means stdout/stderr.
	Out    io.Writer
	ErrOut io.Writer
}

// FromEnv builds the default configuration with environment overrides
// applied.
func FromEnv() (Config, error) {
	cfg := Config{
		Version: release.Latest,
		Repo: artifact.Repo{
			Host:   DefaultHost,
			Slug:   DefaultSlug,
			Binary: DefaultBinary,
		},
		APIBase: release.DefaultAPIBase,
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
	}

	if v := os.Getenv(EnvVersion); v != "" {
		cfg.Version = v
	}
	cfg.KeyringPath = os.Getenv(EnvKeyring)

	if dir := os.Getenv(EnvInstallDir); dir != "" {
		cfg.InstallDir = dir
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.InstallDir = filepath.Join(home, ".local", "bin")
	}

	return cfg, nil
}
