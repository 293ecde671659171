package verify

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// SignatureError reports a detached signature that did not verify
// against the configured keyring. Unlike an absent signature, an invalid
// one is fatal.
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature verification failed: %v", e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}

// LoadKeyring reads an OpenPGP keyring, armored or binary.
func LoadKeyring(path string) (openpgp.EntityList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyring: %w", err)
	}

	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return keyring, nil
}

// DetachedSignature verifies an archive against a detached signature
// using the given keyring. Armored signatures are tried first, matching
// how release .asc files are usually published.
func DetachedSignature(keyring openpgp.EntityList, archivePath string, signature []byte) error {
	archive, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archive.Close()

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, archive, bytes.NewReader(signature), nil)
	if err != nil {
		if _, seekErr := archive.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("rewind archive: %w", seekErr)
		}
		_, err = openpgp.CheckDetachedSignature(keyring, archive, bytes.NewReader(signature), nil)
	}
	if err != nil {
		return &SignatureError{Err: err}
	}

	return nil
}
