// Package srcfiles tracks byte offsets for one or more concatenated source
// inputs so that later pipeline stages can map a flat offset back to a
// file name, line, and column.
package srcfiles

import "sort"

// Position is a resolved (line, column) location within a File.
type Position struct {
	Pos    int
	Offset int
	Line   int
	Column int
}

func (p Position) IsValid() bool { return p.Line > 0 }

// File holds the line-start offsets for one named input.
type File struct {
	Name  string
	lines []int
	size  int
	start int
}

// newFile scans src once and records the byte offset each line starts at,
// so Position can later binary-search it instead of rescanning.
func newFile(name string, start int, src []byte) File {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' && i+1 < len(src) {
			lines = append(lines, i+1)
		}
	}
	return File{
		Name:  name,
		lines: lines,
		size:  len(src),
		start: start,
	}
}

func (f File) Position(pos int) Position {
	if pos < 0 {
		return Position{-1, -1, -1, -1}
	}
	offset := pos - f.start
	i := searchLine(f.lines, offset)
	return Position{
		Pos:    pos,
		Offset: offset,
		Line:   i + 1,
		Column: offset - f.lines[i] + 1,
	}
}

func (f File) LineOfPos(src string, pos int) string {
	i := searchLine(f.lines, pos-f.start)
	start := f.lines[i]
	end := f.size
	if i+1 < len(f.lines) {
		end = f.lines[i+1]
	}
	b := src[f.start+start : f.start+end]
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	return string(b)
}

func searchLine(lines []int, offset int) int {
	i := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return i
}
