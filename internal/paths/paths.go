package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "kiln"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory holding all build trees.
//
//	Linux:   $XDG_CACHE_HOME/kiln or ~/.cache/kiln
//	macOS:   ~/Library/Caches/kiln
func Builds() string {
	return filepath.Join(xdg.CacheHome, toolName)
}

// Default base directory for a package's build tree.
//
// The base directory contains the isolated root filesystem and everything
// beneath it (source checkout, build output, staging tree). It is the tree
// the cleanup stage removes.
func Base(pkg string) string {
	return filepath.Join(Builds(), pkg)
}

// Default path for a package's final artifact.
//
// The artifact is placed in the current working directory, outside the base
// directory, so that it survives cleanup. Falls back to the builds directory
// when the working directory cannot be determined.
func Artifact(pkg string) string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = Builds()
	}
	return filepath.Join(cwd, pkg+".pkg.tar.gz")
}
