// Package verify checks downloaded archives against published checksums
// and, when a keyring is configured, detached OpenPGP signatures.
//
// Checksum verification is best effort: releases are not required to
// publish a .sha256 file, so an absent checksum degrades to a warning at
// the pipeline level. A checksum that is present and does not match is
// the one hard stop in the whole installer.
package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// ChecksumMismatchError reports a digest that differs from the published
// value.
type ChecksumMismatchError struct {
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch:\nexpected: %s\nactual:   %s", e.Expected, e.Actual)
}

// FileSHA256 computes the hex-encoded SHA256 digest of a file.
func FileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ParseChecksum extracts the digest from a published checksum file. The
// file conventionally holds "<hex>  <filename>"; only the leading hex
// token matters.
func ParseChecksum(content []byte) (string, error) {
	fields := strings.Fields(string(content))
	if len(fields) == 0 {
		return "", fmt.Errorf("checksum file is empty")
	}

	digest := strings.ToLower(fields[0])
	if len(digest) != sha256.Size*2 {
		return "", fmt.Errorf("checksum token has length %d, want %d", len(digest), sha256.Size*2)
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return "", fmt.Errorf("checksum token is not hex: %w", err)
	}

	return digest, nil
}

// SHA256 recomputes the archive's digest and compares it to the
// published checksum file content.
func SHA256(archivePath string, checksumContent []byte) error {
	expected, err := ParseChecksum(checksumContent)
	if err != nil {
		return fmt.Errorf("parse checksum file: %w", err)
	}

	actual, err := FileSHA256(archivePath)
	if err != nil {
		return fmt.Errorf("compute archive checksum: %w", err)
	}

	if actual != expected {
		return &ChecksumMismatchError{Expected: expected, Actual: actual}
	}

	return nil
}
