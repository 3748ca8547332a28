package source

import (
	"sort"
	"time"
)

// File is one loaded source or configuration file: its text plus the byte
// offset of every line start, built lazily for diagnostics that need to turn
// raw offsets into line and column numbers.
type File struct {
	Name string
	Text string

	modTime    time.Time
	size       int64
	lineStarts []int
}

// NewFile wraps in-memory text as a File. Files that came from disk are
// produced by Cache.Load instead.
func NewFile(name, text string) *File {
	return &File{Name: name, Text: text}
}

// LineStarts returns the byte offset of each line start, including offset 0
// for the first line.
func (f *File) LineStarts() []int {
	if f.lineStarts == nil {
		starts := []int{0}
		for i := 0; i < len(f.Text); i++ {
			if f.Text[i] == '\n' {
				starts = append(starts, i+1)
			}
		}
		f.lineStarts = starts
	}
	return f.lineStarts
}

// Position converts a byte offset into 1-based line and column numbers.
// Offsets outside the text clamp to its ends.
func (f *File) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Text) {
		offset = len(f.Text)
	}
	starts := f.LineStarts()
	idx := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	return idx, offset - starts[idx-1] + 1
}
