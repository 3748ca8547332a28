package emit

import (
	"os"
	"path/filepath"

	"github.com/scythejs/scythe/internal/errors"
)

// WriteFile writes one output file, creating parent directories as needed.
func WriteFile(path string, contents []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapFileSystemError("create directory", dir, err)
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	return nil
}
