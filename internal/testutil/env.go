// Package testutil provides utilities for testing the installer in
// isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv isolates a test from the caller's real environment.
// It clears every ASSAY_* override and points HOME and TMPDIR at
// per-test directories, so tests never read the developer's own
// configuration or leave files outside the test tree.
//
// Cleanup is handled by t.TempDir and t.Setenv, so callers don't need
// to undo anything.
func SetupTestEnv(t *testing.T) {
	t.Helper()

	tmpDir := t.TempDir()

	dirs := map[string]string{
		"HOME":   filepath.Join(tmpDir, "home"),
		"TMPDIR": filepath.Join(tmpDir, "tmp"),
	}
	for env, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
		t.Setenv(env, dir)
	}

	t.Setenv("ASSAY_VERSION", "")
	t.Setenv("ASSAY_INSTALL_DIR", "")
	t.Setenv("ASSAY_GPG_KEYRING", "")
}
