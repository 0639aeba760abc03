// Package syntax implements lexical and syntactic analysis for the cang language.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF Token = iota // end of input; never returned by Tokenize

	// Literals
	_Number // 123
	_String // "hello"
	_Name   // identifier: foo, bar, _tmp1

	// Operators
	_Add // +
	_Sub // -
	_Mul // *
	_Div // /
	_Eq  // =

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Semi   // ;
	_Comma  // ,

	// Keywords
	_Fn
	_Let
	_Print

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF: "EOF",

	_Number: "NUMBER",
	_String: "STRING",
	_Name:   "NAME",

	_Add: "+",
	_Sub: "-",
	_Mul: "*",
	_Div: "/",
	_Eq:  "=",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrace: "{",
	_Rbrace: "}",
	_Semi:   ";",
	_Comma:  ",",

	_Fn:    "fn",
	_Let:   "let",
	_Print: "print",
}

// kindNames holds the token kind names used in debug output.
var kindNames = [...]string{
	_EOF:    "Eof",
	_Number: "Number",
	_String: "String",
	_Name:   "Identifier",
	_Add:    "Plus",
	_Sub:    "Minus",
	_Mul:    "Star",
	_Div:    "Slash",
	_Eq:     "Eq",
	_Lparen: "LParen",
	_Rparen: "RParen",
	_Lbrace: "LCurly",
	_Rbrace: "RCurly",
	_Semi:   "Semicolon",
	_Comma:  "Comma",
	_Fn:     "Fn",
	_Let:    "Let",
	_Print:  "Print",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Kind returns the token kind name (Number, Plus, LCurly, ...).
func (t Token) Kind() string {
	if t < tokenCount {
		return kindNames[t]
	}
	return fmt.Sprintf("Kind(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
//
//	1: + -
//	2: * /
func (t Token) Precedence() int {
	switch t {
	case _Add, _Sub:
		return 1
	case _Mul, _Div:
		return 2
	}
	return 0
}

// HasText reports whether tokens of kind t carry source text.
func (t Token) HasText() bool {
	return t == _Number || t == _String || t == _Name
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported operator tokens for the evaluator and the cost calculator.
const (
	Add Token = _Add // +
	Sub Token = _Sub // -
	Mul Token = _Mul // *
	Div Token = _Div // /
)

// keywords maps keyword strings to their token type.
var keywords = map[string]Token{
	"fn":    _Fn,
	"let":   _Let,
	"print": _Print,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}

// TokenInfo is a single positioned token produced by Tokenize.
type TokenInfo struct {
	Tok  Token  // token type
	Text string // source text for Number, Identifier and String tokens
	Pos  Pos    // position where the token's scan completed
}

// HasText reports whether the token carries text.
func (ti TokenInfo) HasText() bool {
	return ti.Tok.HasText()
}

// String returns a debug representation such as Number("12") @1:2.
func (ti TokenInfo) String() string {
	if ti.HasText() {
		return fmt.Sprintf("%s(%q) @%s", ti.Tok.Kind(), ti.Text, ti.Pos)
	}
	return fmt.Sprintf("%s @%s", ti.Tok.Kind(), ti.Pos)
}
