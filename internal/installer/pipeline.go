package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Rul1an/getassay-site/internal/artifact"
	"github.com/Rul1an/getassay-site/internal/extract"
	"github.com/Rul1an/getassay-site/internal/fetch"
	"github.com/Rul1an/getassay-site/internal/install"
	"github.com/Rul1an/getassay-site/internal/platform"
	"github.com/Rul1an/getassay-site/internal/release"
	"github.com/Rul1an/getassay-site/internal/report"
	"github.com/Rul1an/getassay-site/internal/verify"
	"github.com/Rul1an/getassay-site/internal/workspace"
)

// Run executes the installation pipeline once. Every stage is
// fail-fast; the only degradations are a missing checksum or signature
// file, which warn and continue. The workspace is removed on every
// return path.
func Run(ctx context.Context, cfg Config) error {
	reporter := report.New(cfg.Out, cfg.ErrOut)

	// Stage 1: platform.
	reporter.Step("detecting platform")
	triple, err := detect(ctx, cfg)
	if err != nil {
		return err
	}
	reporter.Step("target: %s", triple)

	// Stage 2: version.
	reporter.Step("resolving version")
	resolver := release.NewResolver(
		release.WithAPIBase(cfg.APIBase),
		release.WithUserAgent(fetch.DefaultUserAgent),
	)
	version, err := resolver.Resolve(ctx, cfg.Repo.Slug, cfg.Version)
	if err != nil {
		return err
	}
	reporter.Step("installing assay %s", version)

	// Stage 3: artifact reference.
	ref := artifact.Locate(cfg.Repo, version, triple)

	// One install run per target directory at a time.
	lock, err := workspace.AcquireLock(cfg.InstallDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	ws, err := workspace.New()
	if err != nil {
		return err
	}
	defer ws.Cleanup()

	// Stage 4: fetch.
	reporter.Step("downloading %s", ref.Filename)
	fetcher := fetch.New(fetch.WithProgress(reporter.Progress))
	archivePath := filepath.Join(ws.Root(), ref.Filename)
	if err := fetcher.Fetch(ctx, ref.DownloadURL, archivePath); err != nil {
		return err
	}

	// Stage 5: verify.
	if err := verifyArchive(ctx, cfg, reporter, fetcher, ref, archivePath); err != nil {
		return err
	}

	// Stage 6: extract and install.
	reporter.Step("extracting %s", ref.Filename)
	extractDir := filepath.Join(ws.Root(), "extracted")
	if err := extract.Archive(archivePath, extractDir); err != nil {
		return err
	}

	fileName := cfg.Repo.Binary + triple.ExeSuffix()
	srcPath, err := extract.LocateBinary(extractDir, artifact.ArchiveDir(cfg.Repo, version, triple), fileName)
	if err != nil {
		return err
	}

	installedPath, err := install.Binary(srcPath, cfg.InstallDir, fileName, !triple.IsWindows())
	if err != nil {
		return err
	}

	// Stage 7: report.
	reporter.Success(installedPath, version)
	reporter.PathHint(cfg.InstallDir)
	return nil
}

func detect(ctx context.Context, cfg Config) (platform.Triple, error) {
	if cfg.Probe != nil {
		return platform.Resolve(*cfg.Probe)
	}
	return platform.NewDetector().Detect(ctx)
}

// verifyArchive runs the checksum and, when a keyring is configured,
// signature checks. Companion-file unavailability degrades to a
// warning; a mismatch or invalid signature aborts the run.
func verifyArchive(ctx context.Context, cfg Config, reporter *report.Reporter, fetcher *fetch.Fetcher, ref artifact.Reference, archivePath string) error {
	checksum, err := fetcher.FetchBytes(ctx, ref.ChecksumURL)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		// Not every release publishes a checksum. Integrity then rests
		// on HTTPS alone, which the user should know about.
		reporter.Warn("no checksum available for %s, skipping verification", ref.Filename)
	} else {
		if err := verify.SHA256(archivePath, checksum); err != nil {
			return err
		}
		reporter.Step("checksum verified")
	}

	if cfg.KeyringPath == "" {
		return nil
	}

	keyring, err := verify.LoadKeyring(cfg.KeyringPath)
	if err != nil {
		// An explicitly configured keyring that cannot be read is a
		// hard failure, not a degradation.
		return fmt.Errorf("load keyring %s: %w", cfg.KeyringPath, err)
	}

	signature, err := fetcher.FetchBytes(ctx, ref.SignatureURL)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		reporter.Warn("no signature available for %s, skipping signature verification", ref.Filename)
		return nil
	}

	if err := verify.DetachedSignature(keyring, archivePath, signature); err != nil {
		return err
	}
	reporter.Step("signature verified")
	return nil
}
