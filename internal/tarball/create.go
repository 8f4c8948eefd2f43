package tarball

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"

	"github.com/arko-martian/peacore/pkgerr"
)

// Create walks srcDir and writes a gzip+tar archive to w, prefixing
// every entry name with "package/" per npm convention. Symlinks and
// other non-regular entries are skipped.
//
// godirwalk.Walk reads each directory's entries (and their node types)
// in a single pass rather than calling os.Lstat on every node the way
// filepath.Walk does, so symlinks are skipped without a stat; every
// other node is Lstat'd once in the callback.
func Create(w io.Writer, srcDir string) error {
	gz := gzip.NewWriter(w)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	return godirwalk.Walk(srcDir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.ModeType()&os.ModeSymlink != 0 {
				return nil
			}

			rel, err := filepath.Rel(srcDir, path)
			if err != nil {
				return err
			}
			if rel == "." {
				return nil
			}
			name := "package/" + filepath.ToSlash(rel)

			info, err := os.Lstat(path)
			if err != nil {
				return pkgerr.IoErr(err, "stat "+path)
			}

			if info.IsDir() {
				hdr := &tar.Header{Name: name + "/", Typeflag: tar.TypeDir, Mode: int64(info.Mode().Perm())}
				return tw.WriteHeader(hdr)
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			hdr, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return pkgerr.IoErr(err, "build tar header for "+path)
			}
			hdr.Name = name

			if err := tw.WriteHeader(hdr); err != nil {
				return pkgerr.IoErr(err, "write tar header for "+path)
			}

			f, err := os.Open(path)
			if err != nil {
				return pkgerr.IoErr(err, "open "+path)
			}
			defer f.Close()

			_, err = io.Copy(tw, f)
			return err
		},
		Unsorted: false,
	})
}
