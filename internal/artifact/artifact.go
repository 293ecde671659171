// Package artifact builds release artifact references from repo identity,
// version, and target triple.
//
// Locate is a pure function: no I/O, and identical inputs always yield
// identical URLs. The filename and URL layout follows the release
// publishing convention:
//
//	{binary}-{version}-{triple}.tar.gz          (.zip on windows)
//	{host}/{slug}/releases/download/{version}/{filename}
//	{downloadURL}.sha256                        (checksum, best effort)
//	{downloadURL}.asc                           (signature, best effort)
package artifact

import (
	"fmt"

	"github.com/Rul1an/getassay-site/internal/platform"
)

// Repo identifies where releases are published.
type Repo struct {
	Host   string // release host base, e.g. "https://github.com"
	Slug   string // "owner/name"
	Binary string // installed binary name, e.g. "assay"
}

// Reference points at one release archive and its companion files.
type Reference struct {
	Filename     string
	DownloadURL  string
	ChecksumURL  string
	SignatureURL string
}

// Locate derives the artifact reference for a version and triple.
func Locate(repo Repo, version string, triple platform.Triple) Reference {
	ext := "tar.gz"
	if triple.IsWindows() {
		ext = "zip"
	}

	filename := fmt.Sprintf("%s-%s-%s.%s", repo.Binary, version, triple, ext)
	downloadURL := fmt.Sprintf("%s/%s/releases/download/%s/%s", repo.Host, repo.Slug, version, filename)

	return Reference{
		Filename:     filename,
		DownloadURL:  downloadURL,
		ChecksumURL:  downloadURL + ".sha256",
		SignatureURL: downloadURL + ".asc",
	}
}

// ArchiveDir returns the conventional top-level directory inside the
// archive, which mirrors the archive filename minus the extension.
func ArchiveDir(repo Repo, version string, triple platform.Triple) string {
	return fmt.Sprintf("%s-%s-%s", repo.Binary, version, triple)
}
