package diag

import "strings"

// SourceFile is a registered source document: an id, its original text,
// and a lazily-built line-index table for translating byte offsets into
// (line, column) pairs.
type SourceFile struct {
	ID   int
	Name string
	Text string

	lineStarts []int // byte offset of the first byte of each line (0-based lines)
}

// SourceSet registers source files by id and is the shared lookup table
// the renderer uses to resolve spans.
type SourceSet struct {
	files []*SourceFile
}

// Add registers a new source file and returns it. The returned id is
// stable for the lifetime of the SourceSet.
func (s *SourceSet) Add(name, text string) *SourceFile {
	f := &SourceFile{ID: len(s.files), Name: name, Text: text}
	s.files = append(s.files, f)
	return f
}

// Get returns the source file registered under id, or nil if unknown.
func (s *SourceSet) Get(id int) *SourceFile {
	if id < 0 || id >= len(s.files) {
		return nil
	}
	return s.files[id]
}

func (f *SourceFile) ensureLineIndex() {
	if f.lineStarts != nil {
		return
	}
	starts := []int{0}
	for i := 0; i < len(f.Text); i++ {
		if f.Text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	f.lineStarts = starts
}

// LineCol translates a byte offset into a 1-based (line, column) pair.
// Column is the 1-based offset of the byte within its line, matching
// the lexer's own column accounting, not a rune count.
func (f *SourceFile) LineCol(offset int) (line, col int) {
	f.ensureLineIndex()
	// binary search for the last lineStart <= offset
	lo, hi := 0, len(f.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	lineStart := f.lineStarts[lo]
	return lo + 1, offset - lineStart + 1
}

// Line returns the text of the given 1-based line number, without its
// trailing newline.
func (f *SourceFile) Line(line int) string {
	f.ensureLineIndex()
	if line < 1 || line > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[line-1]
	var end int
	if line < len(f.lineStarts) {
		end = f.lineStarts[line] - 1
	} else {
		end = len(f.Text)
	}
	if end < start {
		end = start
	}
	return strings.TrimSuffix(f.Text[start:end], "\r")
}
