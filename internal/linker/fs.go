package linker

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arko-martian/peacore/pkgerr"
)

// linkOrCopyFile hardlinks src to dest; on any failure (most commonly
// EXDEV, a cross-device link) it falls back to a byte copy that also
// preserves the source file's permission bits. This mirrors dep's own
// renameWithFallback/CopyFile pairing in fs.go, adapted from a
// move-semantics rename to a link-semantics hardlink since the source
// here is CAS-owned content that must not be consumed.
func linkOrCopyFile(src, dest string) (hardlinked bool, err error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return false, pkgerr.IoErr(err, "create parent directory for "+dest)
	}

	os.Remove(dest)

	err = os.Link(src, dest)
	if err == nil {
		return true, nil
	}

	// Hardlinks fail across devices (EXDEV) and on filesystems that
	// don't support them at all (FAT, some overlayfs configurations);
	// either way a copy is the correct fallback, so no reason to
	// distinguish the failure further.
	if cerr := copyFile(src, dest); cerr != nil {
		return false, cerr
	}
	return false, nil
}

func copyFile(src, dest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return pkgerr.IoErr(err, "open "+src)
	}
	defer srcFile.Close()

	destFile, err := os.Create(dest)
	if err != nil {
		return pkgerr.IoErr(err, "create "+dest)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, srcFile); err != nil {
		return pkgerr.IoErr(err, "copy "+src+" to "+dest)
	}

	info, err := os.Stat(src)
	if err != nil {
		return pkgerr.IoErr(err, "stat "+src)
	}
	if err := os.Chmod(dest, info.Mode()); err != nil {
		return pkgerr.IoErr(err, "chmod "+dest)
	}
	return nil
}

// hardlinkRecursive walks src and reproduces it under dest, hardlinking
// every regular file and falling back to a copy per file as needed.
func hardlinkRecursive(src, dest string, stats *LinkStats) error {
	info, err := os.Lstat(src)
	if err != nil {
		return pkgerr.IoErr(err, "stat "+src)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return nil
	}

	if info.IsDir() {
		if err := os.MkdirAll(dest, info.Mode().Perm()); err != nil {
			return pkgerr.IoErr(err, "create directory "+dest)
		}
		stats.Directories++

		entries, err := os.ReadDir(src)
		if err != nil {
			return pkgerr.IoErr(err, "read directory "+src)
		}
		for _, entry := range entries {
			if err := hardlinkRecursive(filepath.Join(src, entry.Name()), filepath.Join(dest, entry.Name()), stats); err != nil {
				return err
			}
		}
		return nil
	}

	hardlinked, err := linkOrCopyFile(src, dest)
	if err != nil {
		return err
	}
	if hardlinked {
		stats.Hardlinks++
	} else {
		stats.Copies++
	}
	return nil
}
