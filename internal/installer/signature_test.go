package installer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/Rul1an/getassay-site/internal/verify"
)

const signedArchiveName = "assay-v1.3.0-x86_64-unknown-linux-gnu.tar.gz"

func setupSignedRelease(t *testing.T) (rs *releaseServer, keyringPath string) {
	t.Helper()

	config := &packet.Config{Algorithm: packet.PubKeyAlgoEdDSA}
	entity, err := openpgp.NewEntity("assay release", "test", "releases@example.com", config)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	archive := buildArchive(t, "assay-v1.3.0-x86_64-unknown-linux-gnu", "assay", "signed build")

	var sig bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&sig, entity, bytes.NewReader(archive), nil); err != nil {
		t.Fatalf("sign archive: %v", err)
	}

	var pub bytes.Buffer
	if err := entity.Serialize(&pub); err != nil {
		t.Fatalf("serialize public key: %v", err)
	}
	keyringPath = filepath.Join(t.TempDir(), "assay.gpg")
	if err := os.WriteFile(keyringPath, pub.Bytes(), 0o644); err != nil {
		t.Fatalf("write keyring: %v", err)
	}

	rs = newReleaseServer(t, signedArchiveName, archive, digestOf(archive))
	rs.signature = sig.Bytes()
	return rs, keyringPath
}

func TestRunVerifiesSignature(t *testing.T) {
	rs, keyringPath := setupSignedRelease(t)

	cfg, out := testConfig(t, rs)
	cfg.KeyringPath = keyringPath

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run failed: %v\noutput:\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "signature verified") {
		t.Errorf("signature verification not reported:\n%s", out.String())
	}
}

func TestRunInvalidSignatureAborts(t *testing.T) {
	rs, keyringPath := setupSignedRelease(t)
	// Signature bytes for different content than the served archive.
	rs.archive = buildArchive(t, "assay-v1.3.0-x86_64-unknown-linux-gnu", "assay", "tampered build")
	rs.checksum = digestOf(rs.archive)

	cfg, _ := testConfig(t, rs)
	cfg.KeyringPath = keyringPath

	err := Run(context.Background(), cfg)
	var sigErr *verify.SignatureError
	if !errors.As(err, &sigErr) {
		t.Fatalf("error type mismatch: got %T (%v)", err, err)
	}
	if _, statErr := os.Stat(filepath.Join(cfg.InstallDir, "assay")); !os.IsNotExist(statErr) {
		t.Error("binary installed despite invalid signature")
	}
}

func TestRunMissingSignatureWarns(t *testing.T) {
	rs, keyringPath := setupSignedRelease(t)
	rs.signature = nil // release publishes no .asc

	cfg, out := testConfig(t, rs)
	cfg.KeyringPath = keyringPath

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "skipping signature verification") {
		t.Errorf("missing-signature warning not emitted:\n%s", out.String())
	}
}

func TestRunUnreadableKeyringIsFatal(t *testing.T) {
	rs, _ := setupSignedRelease(t)

	cfg, _ := testConfig(t, rs)
	cfg.KeyringPath = filepath.Join(t.TempDir(), "missing.gpg")

	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unreadable keyring")
	}
}
