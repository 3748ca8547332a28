package source

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythejs/scythe/internal/errors"
)

func TestFilePosition(t *testing.T) {
	file := NewFile("test.ts", "let a;\nlet bc;\n\nlet d;")

	tests := []struct {
		name       string
		offset     int
		wantLine   int
		wantColumn int
	}{
		{"start of file", 0, 1, 1},
		{"middle of first line", 4, 1, 5},
		{"last byte of first line", 6, 1, 7},
		{"start of second line", 7, 2, 1},
		{"empty line", 15, 3, 1},
		{"start of last line", 16, 4, 1},
		{"end of file", 22, 4, 7},
		{"negative offset clamps to start", -5, 1, 1},
		{"offset past end clamps to end", 100, 4, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, column := file.Position(tt.offset)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantColumn, column)
		})
	}
}

func TestFilePositionEmptyText(t *testing.T) {
	file := NewFile("empty.ts", "")

	line, column := file.Position(0)

	assert.Equal(t, 1, line)
	assert.Equal(t, 1, column)
}

func TestLineStarts(t *testing.T) {
	file := NewFile("test.ts", "a\nbc\n\nd")

	assert.Equal(t, []int{0, 2, 5, 6}, file.LineStarts())
}

func TestCacheLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const a = 1;\n"), 0644))

	cache := NewCache(4)

	first, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "export const a = 1;\n", first.Text)

	second, err := cache.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second, "unchanged file should hit the cache")
}

func TestCacheRevalidatesChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const a = 1;\n"), 0644))

	cache := NewCache(4)

	_, err := cache.Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("export const a = 1;\nexport const b = 2;\n"), 0644))

	reloaded, err := cache.Load(path)
	require.NoError(t, err)
	assert.Contains(t, reloaded.Text, "const b")
}

func TestCacheLoadMissingFile(t *testing.T) {
	cache := NewCache(4)

	_, err := cache.Load(filepath.Join(t.TempDir(), "missing.ts"))

	require.Error(t, err)
	var toolErr *errors.ToolError
	require.True(t, stderrors.As(err, &toolErr))
	assert.Equal(t, errors.FileSystemErrorCode, toolErr.Code)
}

func TestCachePosition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.ts")
	require.NoError(t, os.WriteFile(path, []byte("let a;\nlet b;\n"), 0644))

	cache := NewCache(4)

	line, column := cache.Position(path, 7)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, column)

	line, column = cache.Position(filepath.Join(dir, "missing.ts"), 7)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, column)
}

func TestCacheEviction(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.ts")
	second := filepath.Join(dir, "b.ts")
	require.NoError(t, os.WriteFile(first, []byte("let a;\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("let b;\n"), 0644))

	cache := NewCache(1)

	_, err := cache.Load(first)
	require.NoError(t, err)
	_, err = cache.Load(second)
	require.NoError(t, err)

	reloaded, err := cache.Load(first)
	require.NoError(t, err)
	assert.Equal(t, "let a;\n", reloaded.Text)
}
