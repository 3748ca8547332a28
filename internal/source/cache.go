package source

import (
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/scythejs/scythe/internal/errors"
)

const defaultCapacity = 256

// Cache loads files from disk and keeps the most recently used ones in
// memory. Entries are revalidated against the file's modification time and
// size on every hit, so edits between runs of a watch loop are picked up.
type Cache struct {
	files *lru.Cache[string, *File]
}

// NewCache creates a cache bounded to capacity files. A capacity of zero or
// less selects a default.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	files, _ := lru.New[string, *File](capacity)
	return &Cache{files: files}
}

// Load returns the file at path, reading it from disk unless a current
// cached copy exists.
func (c *Cache) Load(path string) (*File, error) {
	clean := filepath.Clean(path)

	info, err := os.Stat(clean)
	if err != nil {
		return nil, errors.WrapFileSystemError("stat", clean, err)
	}
	if cached, ok := c.files.Get(clean); ok {
		if cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
			return cached, nil
		}
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", clean, err)
	}
	file := &File{
		Name:    clean,
		Text:    string(data),
		modTime: info.ModTime(),
		size:    info.Size(),
	}
	c.files.Add(clean, file)
	return file, nil
}

// Position resolves a byte offset within the named file to 1-based line and
// column numbers. Unreadable files report position 0,0.
func (c *Cache) Position(path string, offset int) (line, column int) {
	file, err := c.Load(path)
	if err != nil {
		return 0, 0
	}
	return file.Position(offset)
}
