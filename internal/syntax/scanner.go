package syntax

import "strings"

// Scanner performs lexical analysis on cang source text.
//
// Scanning never fails: characters that cannot start a token are skipped
// and an unterminated string literal ends at end of input.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token  // token type
	lit    string // token text (identifier name, digits, decoded string)
	tokPos Pos    // position where the token's scan completed

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source text.
func NewScanner(filename string, src []byte) *Scanner {
	return &Scanner{source: *newSource(filename, src)}
}

// Tokenize scans src and returns every token in order.
// The trailing EOF is not included.
func Tokenize(src string) []TokenInfo {
	return TokenizeFile("", []byte(src))
}

// TokenizeFile is like Tokenize but records filename in token positions.
func TokenizeFile(filename string, src []byte) []TokenInfo {
	s := NewScanner(filename, src)
	var toks []TokenInfo
	for {
		s.Next()
		if s.tok == _EOF {
			return toks
		}
		ti := TokenInfo{Tok: s.tok, Pos: s.tokPos}
		if s.tok.HasText() {
			ti.Text = s.lit
		}
		toks = append(toks, ti)
	}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	for isWhitespace(s.ch) || s.ch == '\n' {
		s.nextch()
	}

	s.lit = ""
	switch {
	case s.ch < 0:
		s.tok = _EOF

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	default:
		if !s.scanOperator() {
			goto redo
		}
	}

	s.tokPos = s.pos()
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's text.
func (s *Scanner) Literal() string {
	return s.lit
}

// Pos returns the position where the current token's scan completed.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// stopLit ends literal accumulation and returns the accumulated string.
func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a maximal run of decimal digits.
// Signs are separate _Sub tokens; there is no fractional form.
func (s *Scanner) scanNumber() {
	s.startLit()
	s.nextch()

	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()
	s.tok = _Number
}

// scanString scans a string literal.
// The resulting literal is the decoded string content. Unknown escapes are
// kept as a backslash followed by the character. If the closing quote is
// missing the literal ends at end of input.
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	s.litBuf.Reset()

	for {
		switch s.ch {
		case '"':
			s.nextch()
			s.lit = s.stopLit()
			s.tok = _String
			return

		case '\\':
			s.nextch()
			s.scanEscape()

		case -1:
			s.lit = s.stopLit()
			s.tok = _String
			return

		default:
			s.continueLit()
			s.nextch()
		}
	}
}

// scanEscape decodes the character following a backslash.
func (s *Scanner) scanEscape() {
	switch s.ch {
	case 'n':
		s.litBuf.WriteByte('\n')
	case 't':
		s.litBuf.WriteByte('\t')
	case 'r':
		s.litBuf.WriteByte('\r')
	case '\\':
		s.litBuf.WriteByte('\\')
	case '"':
		s.litBuf.WriteByte('"')
	case -1:
		s.litBuf.WriteByte('\\')
		return
	default:
		s.litBuf.WriteByte('\\')
		s.continueLit()
	}
	s.nextch()
}

// scanOperator scans a single-character operator or delimiter.
// It consumes the character either way and reports whether it formed a token.
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.tok = _Add
	case '-':
		s.tok = _Sub
	case '*':
		s.tok = _Mul
	case '/':
		s.tok = _Div
	case '=':
		s.tok = _Eq
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '{':
		s.tok = _Lbrace
	case '}':
		s.tok = _Rbrace
	case ';':
		s.tok = _Semi
	case ',':
		s.tok = _Comma
	default:
		return false
	}
	return true
}
