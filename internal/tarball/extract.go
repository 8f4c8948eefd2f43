// Package tarball implements safe extraction and creation of
// gzip-compressed tar archives in the npm "package/" layout, with
// explicit path-traversal and symlink-escape defense.
package tarball

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arko-martian/peacore/pkgerr"
)

// Extract reads a gzip+tar stream from r and materializes it under
// destRoot. Any entry whose path would escape destRoot, or whose link
// target escapes it, fails the whole extraction with an
// IntegrityFailure.
func Extract(r io.Reader, destRoot string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return pkgerr.IoErr(err, "open gzip stream")
	}
	defer gz.Close()

	tr := tar.NewReader(gz)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return pkgerr.IoErr(err, "read tar entry")
		}

		target, err := validateExtractPath(destRoot, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return pkgerr.IoErr(err, "create directory "+target)
			}
		case tar.TypeReg, tar.TypeRegA:
			if err := extractRegularFile(tr, target, hdr); err != nil {
				return err
			}
		case tar.TypeSymlink, tar.TypeLink:
			if err := extractSymlink(destRoot, target, hdr.Linkname); err != nil {
				return err
			}
		default:
			// Devices, fifos and other special types are not part of the
			// npm tarball format; skip rather than fail.
		}
	}
}

// validateExtractPath rejects absolute entry paths, any ".." component,
// and any entry whose normalized path would land outside destRoot.
func validateExtractPath(destRoot, name string) (string, error) {
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || strings.HasPrefix(filepath.ToSlash(name), "/") {
		return "", pkgerr.IntegrityErr("absolute path in archive: " + name)
	}
	for _, part := range strings.Split(clean, string(filepath.Separator)) {
		if part == ".." || filepath.IsAbs(part) {
			return "", pkgerr.IntegrityErr("unsafe path in archive: " + name)
		}
	}

	target := filepath.Join(destRoot, clean)
	if !strings.HasPrefix(target, filepath.Clean(destRoot)+string(filepath.Separator)) && target != filepath.Clean(destRoot) {
		return "", pkgerr.IntegrityErr("path escapes destination: " + name)
	}
	return target, nil
}

func extractRegularFile(r io.Reader, target string, hdr *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return pkgerr.IoErr(err, "create parent directory for "+target)
	}

	mode := os.FileMode(0644)
	if hdr.Mode != 0 {
		mode = os.FileMode(hdr.Mode) & 0777
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return pkgerr.IoErr(err, "create file "+target)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return pkgerr.IoErr(err, "write file "+target)
	}
	return nil
}

func extractSymlink(destRoot, target, linkname string) error {
	if filepath.IsAbs(linkname) {
		return pkgerr.IntegrityErr("absolute symlink target: " + linkname)
	}

	resolved := filepath.Join(filepath.Dir(target), linkname)
	cleanRoot := filepath.Clean(destRoot)
	if !strings.HasPrefix(resolved, cleanRoot+string(filepath.Separator)) && resolved != cleanRoot {
		return pkgerr.IntegrityErr("symlink escapes destination: " + linkname)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return pkgerr.IoErr(err, "create parent directory for symlink "+target)
	}

	os.Remove(target)
	if err := os.Symlink(linkname, target); err != nil {
		// Platforms without symlink support (older Windows without the
		// privilege) skip rather than fail the whole extraction.
		if os.IsPermission(err) {
			return nil
		}
		return pkgerr.IoErr(err, "create symlink "+target)
	}
	return nil
}
