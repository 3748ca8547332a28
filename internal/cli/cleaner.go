package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scythejs/scythe/internal/errors"
)

// Cleaner removes the configured output directory ahead of a fresh emit.
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean removes outDir recursively. Directories that hold the project's
// sources are refused: filesystem roots, the working directory, and any of
// the protected paths (config directory, computed root directory).
func (c *Cleaner) Clean(outDir string, protected ...string) error {
	if outDir == "" {
		return errors.ValidationError("nothing to clean, no outDir is configured",
			"set compilerOptions.outDir in tsconfig.json or pass --outDir")
	}

	resolved := filepath.Clean(outDir)
	if resolved == "." || filepath.Dir(resolved) == resolved {
		return errors.ValidationError(fmt.Sprintf("refusing to clean '%s'", outDir),
			"point compilerOptions.outDir at a dedicated build directory")
	}
	for _, path := range protected {
		if path != "" && filepath.Clean(path) == resolved {
			return errors.ValidationError(fmt.Sprintf("refusing to clean '%s', it contains project sources", outDir),
				"point compilerOptions.outDir at a dedicated build directory")
		}
	}

	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(resolved); err != nil {
		return errors.WrapFileSystemError("clean", resolved, err)
	}
	return nil
}
