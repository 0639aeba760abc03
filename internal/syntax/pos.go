package syntax

import "fmt"

// Pos is a point in cang source, recorded by the scanner when it finishes
// a token. Lines start at 1. Columns are not byte offsets: col is the
// number of characters (runes) consumed on the line so far, so a token
// ending in the first character of a line is at column 1 and the start of
// a line is column 0.
//
// The zero Pos has line 0 and marks nodes built outside the parser.
type Pos struct {
	filename string // empty for REPL input and strings
	line     uint32
	col      uint32
}

// NewPos returns the position col characters into line of filename.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String formats p as "file:line:col", or "line:col" for unnamed input.
func (p Pos) String() string {
	if p.filename == "" {
		return fmt.Sprintf("%d:%d", p.line, p.col)
	}
	return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
}

// IsValid reports whether p came from scanned source.
func (p Pos) IsValid() bool { return p.line > 0 }

func (p Pos) Line() uint32 { return p.line }

// Col returns the count of characters consumed on the line, not a byte
// offset.
func (p Pos) Col() uint32 { return p.col }

func (p Pos) Filename() string { return p.filename }
