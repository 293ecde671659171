// Command getassay installs the assay binary from GitHub releases.
//
// There are no flags or subcommands; behavior is configured through the
// environment:
//
//	ASSAY_VERSION      release tag to install (default: latest)
//	ASSAY_INSTALL_DIR  destination directory (default: ~/.local/bin)
//	ASSAY_GPG_KEYRING  OpenPGP keyring for signature verification (optional)
//
// main is the single point of process termination: the pipeline
// propagates typed errors up here, and its deferred workspace cleanup
// has already run by the time the process exits.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rul1an/getassay-site/internal/installer"
	"github.com/Rul1an/getassay-site/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := report.New(os.Stdout, os.Stderr)

	cfg, err := installer.FromEnv()
	if err != nil {
		reporter.Error(err)
		os.Exit(1)
	}

	if err := installer.Run(ctx, cfg); err != nil {
		reporter.Error(err)
		os.Exit(1)
	}
}
