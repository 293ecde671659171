package testutil

import (
	"os"
	"testing"
)

func TestSetupTestEnv(t *testing.T) {
	SetupTestEnv(t)

	for _, env := range []string{"HOME", "TMPDIR"} {
		dir := os.Getenv(env)
		if dir == "" {
			t.Errorf("%s not set", env)
			continue
		}
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("%s dir missing: %v", env, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory: %s", env, dir)
		}
	}

	for _, env := range []string{"ASSAY_VERSION", "ASSAY_INSTALL_DIR", "ASSAY_GPG_KEYRING"} {
		if v := os.Getenv(env); v != "" {
			t.Errorf("%s = %q, want empty", env, v)
		}
	}
}
