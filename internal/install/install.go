// Package install places the extracted binary into the install
// directory.
//
// The copy overwrites any previously installed binary of the same name.
// Reinstalling is idempotent; there is no version check against what is
// already there.
package install

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// InstallFailedError reports a failure to place the binary.
type InstallFailedError struct {
	Dest string
	Err  error
}

func (e *InstallFailedError) Error() string {
	return fmt.Sprintf("install %s: %v", e.Dest, e.Err)
}

func (e *InstallFailedError) Unwrap() error {
	return e.Err
}

// Binary copies srcPath into installDir as fileName and, when
// executable is set, marks it world-executable. It returns the final
// installed path.
func Binary(srcPath, installDir, fileName string, executable bool) (string, error) {
	destPath := filepath.Join(installDir, fileName)

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return "", &InstallFailedError{Dest: destPath, Err: fmt.Errorf("create install dir: %w", err)}
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", &InstallFailedError{Dest: destPath, Err: fmt.Errorf("open binary: %w", err)}
	}
	defer src.Close()

	dest, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", &InstallFailedError{Dest: destPath, Err: fmt.Errorf("create installed file: %w", err)}
	}

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		return "", &InstallFailedError{Dest: destPath, Err: fmt.Errorf("copy binary: %w", err)}
	}

	if err := dest.Close(); err != nil {
		return "", &InstallFailedError{Dest: destPath, Err: fmt.Errorf("close installed file: %w", err)}
	}

	if executable {
		if err := os.Chmod(destPath, 0o755); err != nil {
			return "", &InstallFailedError{Dest: destPath, Err: fmt.Errorf("set executable: %w", err)}
		}
	}

	return destPath, nil
}
