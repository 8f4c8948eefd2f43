//go:build !windows

package linker

import (
	"os"
	"path/filepath"

	"github.com/arko-martian/peacore/pkgerr"
)

// createBinShim creates a POSIX symlink at <root>/.bin/<shimName>
// pointing at targetPath, and marks targetPath executable.
func createBinShim(root, shimName, targetPath string) error {
	binDir := filepath.Join(root, ".bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return pkgerr.IoErr(err, "create .bin directory")
	}

	shimPath := filepath.Join(binDir, shimName)
	os.Remove(shimPath)

	if err := os.Symlink(targetPath, shimPath); err != nil {
		return pkgerr.IoErr(err, "create bin shim "+shimPath)
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return pkgerr.IoErr(err, "stat bin target "+targetPath)
	}
	if err := os.Chmod(targetPath, info.Mode()|0111); err != nil {
		return pkgerr.IoErr(err, "chmod bin target "+targetPath)
	}
	return nil
}
