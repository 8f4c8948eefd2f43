package linker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/arko-martian/peacore/pkgerr"
)

// Linker materializes resolved packages into a destination node_modules
// root.
type Linker struct {
	Root string
}

// New returns a Linker targeting root.
func New(root string) *Linker {
	return &Linker{Root: root}
}

func targetDir(root, name string) string {
	if strings.HasPrefix(name, "@") {
		parts := strings.SplitN(name, "/", 2)
		return filepath.Join(root, parts[0], parts[1])
	}
	return filepath.Join(root, name)
}

// Materialize links every package in pkgs into the linker's root,
// returning aggregate counters.
func (l *Linker) Materialize(pkgs []PackageInfo) (LinkStats, error) {
	var stats LinkStats

	if err := os.MkdirAll(l.Root, 0755); err != nil {
		return stats, pkgerr.IoErr(err, "create node_modules root "+l.Root)
	}

	for _, pkg := range pkgs {
		dest := targetDir(l.Root, pkg.Name)

		if strings.HasPrefix(pkg.Name, "@") {
			scopeDir := filepath.Dir(dest)
			if err := os.MkdirAll(scopeDir, 0755); err != nil {
				return stats, pkgerr.IoErr(err, "create scope directory "+scopeDir)
			}
		}

		if err := hardlinkRecursive(pkg.SourcePath, dest, &stats); err != nil {
			return stats, err
		}
		stats.PackagesLinked++

		for _, bin := range pkg.Bin {
			targetPath := filepath.Join(dest, bin.Target)
			if _, err := os.Stat(targetPath); err != nil {
				// Bin target wasn't actually linked (missing from the
				// package contents); skip the shim rather than fail
				// the whole install.
				continue
			}
			if err := createBinShim(l.Root, bin.ShimName, targetPath); err != nil {
				return stats, err
			}
			stats.BinShims++
		}
	}

	return stats, nil
}

// Cleanup removes path entirely, after counting what it contained.
// Because the CAS holds the only authoritative copy of every file's
// content, removing a hardlink-backed node_modules tree never loses
// cached data.
func Cleanup(path string) (CleanupStats, error) {
	var stats CleanupStats

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, pkgerr.IoErr(err, "stat "+path)
	}
	if !info.IsDir() {
		return stats, pkgerr.New(pkgerr.ConfigValidation, path+" is not a directory")
	}

	err = godirwalk.Walk(path, &godirwalk.Options{
		Callback: func(p string, de *godirwalk.Dirent) error {
			if de.ModeType().IsDir() {
				stats.DirectoriesRemoved++
			} else {
				stats.FilesRemoved++
			}
			return nil
		},
	})
	if err != nil {
		return stats, pkgerr.IoErr(err, "walk "+path)
	}

	if err := os.RemoveAll(path); err != nil {
		return stats, pkgerr.IoErr(err, "remove "+path)
	}
	return stats, nil
}
