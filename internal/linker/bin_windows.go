//go:build windows

package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arko-martian/peacore/pkgerr"
)

// createBinShim writes a .cmd wrapper at <root>/.bin/<shimName>.cmd
// that invokes node with the fully resolved target path. Executable
// bits are a POSIX-only concept and are not touched here.
func createBinShim(root, shimName, targetPath string) error {
	binDir := filepath.Join(root, ".bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return pkgerr.IoErr(err, "create .bin directory")
	}

	abs, err := filepath.Abs(targetPath)
	if err != nil {
		return pkgerr.IoErr(err, "resolve absolute path for "+targetPath)
	}

	shimPath := filepath.Join(binDir, shimName+".cmd")
	content := fmt.Sprintf("@IF EXIST \"%%~dp0\\node.exe\" (\r\n\"%%~dp0\\node.exe\"  \"%s\" %%*\r\n) ELSE (\r\nnode  \"%s\" %%*\r\n)\r\n", abs, abs)

	if err := os.WriteFile(shimPath, []byte(content), 0644); err != nil {
		return pkgerr.IoErr(err, "write bin shim "+shimPath)
	}
	return nil
}
