package syntax

import "unicode/utf8"

// source is a character reader with position tracking.
// It decodes UTF-8 text and provides character-by-character access.
type source struct {
	buf []byte // entire input

	// Position tracking
	filename string
	line     uint32 // line of the current character (1-based)
	col      uint32 // characters consumed on the current line

	// Current state
	ch   rune // current character, -1 for EOF
	offs int  // byte offset of the character after ch
}

// newSource creates a source over buf and loads the first character.
func newSource(filename string, buf []byte) *source {
	s := &source{
		buf:      buf,
		filename: filename,
		line:     1,
		ch:       -1, // sentinel: "before first char", no position update
	}
	s.load()
	return s
}

// load decodes the character at offs into ch without consuming it.
func (s *source) load() {
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}
	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.offs += width
}

// nextch consumes the current character and loads the next one.
//
// Position tracking: col counts the characters consumed since the last
// newline. Consuming '\n' moves to the next line with col reset to 0.
func (s *source) nextch() {
	if s.ch < 0 {
		return
	}
	if s.ch == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	s.load()
}

// pos returns the position after the most recently consumed character.
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// Character classification helpers

// isLetter reports whether r is a letter (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is skipped between tokens without
// affecting the line counter.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t'
}
