// Package extract unpacks release archives and locates the binary inside
// them.
//
// Extraction is in-process (archive/tar, archive/zip), so the classic
// "extraction tool not installed" failure becomes "no extractor for this
// archive extension", which ToolMissingError models. Corruption and I/O
// failures during unpacking are ExtractFailedError.
package extract

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ToolMissingError reports an archive extension with no extractor.
type ToolMissingError struct {
	Archive string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("no extractor for archive %s (supported: .tar.gz, .zip)", e.Archive)
}

// ExtractFailedError reports an archive that could not be unpacked.
type ExtractFailedError struct {
	Archive string
	Err     error
}

func (e *ExtractFailedError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Archive, e.Err)
}

func (e *ExtractFailedError) Unwrap() error {
	return e.Err
}

// BinaryNotFoundError reports an archive that unpacked cleanly but did
// not contain the expected binary.
type BinaryNotFoundError struct {
	Binary  string
	Archive string
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("binary %s not found in %s", e.Binary, e.Archive)
}

// Archive extracts archivePath into destDir, choosing the extractor by
// file extension.
func Archive(archivePath, destDir string) error {
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		return tarGz(archivePath, destDir)
	case strings.HasSuffix(archivePath, ".zip"):
		return zipArchive(archivePath, destDir)
	default:
		return &ToolMissingError{Archive: filepath.Base(archivePath)}
	}
}

func tarGz(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("open archive: %w", err)}
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("create gzip reader: %w", err)}
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("create dest dir: %w", err)}
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("read tar header: %w", err)}
		}

		target, err := safeTarget(destDir, header.Name)
		if err != nil {
			return &ExtractFailedError{Archive: archivePath, Err: err}
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("create directory %s: %w", target, err)}
			}

		case tar.TypeReg:
			if err := writeEntry(target, tarReader, os.FileMode(header.Mode)); err != nil {
				return &ExtractFailedError{Archive: archivePath, Err: err}
			}

		case tar.TypeSymlink:
			if err := os.Symlink(header.Linkname, target); err != nil {
				return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("create symlink %s: %w", target, err)}
			}

		default:
			// Skip devices and other special entries.
			continue
		}
	}

	return nil
}

func zipArchive(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("open archive: %w", err)}
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("create dest dir: %w", err)}
	}

	for _, file := range reader.File {
		target, err := safeTarget(destDir, file.Name)
		if err != nil {
			return &ExtractFailedError{Archive: archivePath, Err: err}
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("create directory %s: %w", target, err)}
			}
			continue
		}

		entry, err := file.Open()
		if err != nil {
			return &ExtractFailedError{Archive: archivePath, Err: fmt.Errorf("open entry %s: %w", file.Name, err)}
		}
		writeErr := writeEntry(target, entry, file.Mode())
		entry.Close()
		if writeErr != nil {
			return &ExtractFailedError{Archive: archivePath, Err: writeErr}
		}
	}

	return nil
}

// safeTarget joins an archive entry name under destDir, rejecting
// entries that would escape it.
func safeTarget(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return target, nil
}

func writeEntry(target string, src io.Reader, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err := io.Copy(outFile, src); err != nil {
		outFile.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return outFile.Close()
}

// LocateBinary finds fileName in an extracted tree. It first looks in
// the conventional versioned subdirectory, then falls back to scanning
// the extraction root.
func LocateBinary(root, subdir, fileName string) (string, error) {
	conventional := filepath.Join(root, subdir, fileName)
	if isRegularFile(conventional) {
		return conventional, nil
	}

	var found string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == fileName {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return "", &ExtractFailedError{Archive: root, Err: fmt.Errorf("scan extraction root: %w", walkErr)}
	}

	if found == "" {
		return "", &BinaryNotFoundError{Binary: fileName, Archive: root}
	}
	return found, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
