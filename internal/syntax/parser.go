package syntax

import (
	"fmt"
	"strconv"
)

// maxNesting bounds the recursion depth of the parser so that deeply
// parenthesized input cannot exhaust the goroutine stack.
const maxNesting = 1000

// ErrorKind classifies a ParseError.
type ErrorKind uint8

const (
	UnexpectedToken ErrorKind = iota // a token that cannot start or continue the construct
	ExpectedToken                    // a specific token was required
	UnexpectedEOF                    // input ended inside a construct
)

var errorKindNames = [...]string{
	UnexpectedToken: "UnexpectedToken",
	ExpectedToken:   "ExpectedToken",
	UnexpectedEOF:   "UnexpectedEof",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// ParseError represents a syntax error.
type ParseError struct {
	Kind ErrorKind
	Pos  Pos // position of the offending token; invalid for UnexpectedEOF on empty input
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// Parser performs syntax analysis over a token sequence.
type Parser struct {
	toks []TokenInfo
	next int // index of the token after the current one

	// Current token info (cached from toks)
	tok Token
	lit string
	pos Pos
	cur TokenInfo

	mode  Mode
	depth int
}

// Mode controls optional grammar extensions.
type Mode uint

const (
	// BlockBodies lets a function body hold stmt (';' stmt)* instead of a
	// single expression. Several statements become a Block.
	BlockBodies Mode = 1 << iota
)

// NewParser creates a new Parser for the given tokens.
func NewParser(toks []TokenInfo, mode Mode) *Parser {
	p := &Parser{toks: toks, mode: mode}
	p.advance() // prime the parser with first token
	return p
}

// Parse tokenizes and parses src as a program using the base grammar.
func Parse(src string) (Expr, error) {
	return ParseProgram(Tokenize(src))
}

// ParseFile tokenizes and parses a named source using the given mode.
func ParseFile(filename string, src []byte, mode Mode) (Expr, error) {
	return NewParser(TokenizeFile(filename, src), mode).Program()
}

// ParseStatement parses a single statement from toks.
// Tokens after the statement are ignored.
func ParseStatement(toks []TokenInfo) (Expr, error) {
	return NewParser(toks, 0).Statement()
}

// ParseProgram parses stmt (';' stmt)* from toks.
func ParseProgram(toks []TokenInfo) (Expr, error) {
	return NewParser(toks, 0).Program()
}

// ----------------------------------------------------------------------------
// Token navigation

// advance moves to the next token. Past the end the current token is _EOF.
func (p *Parser) advance() {
	if p.next < len(p.toks) {
		p.cur = p.toks[p.next]
		p.next++
	} else {
		p.cur = TokenInfo{Tok: _EOF}
		if n := len(p.toks); n > 0 {
			p.cur.Pos = p.toks[n-1].Pos
		}
	}
	p.tok = p.cur.Tok
	p.lit = p.cur.Text
	p.pos = p.cur.Pos
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.advance()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise it returns an ExpectedToken or UnexpectedEOF error.
func (p *Parser) want(tok Token, context string) error {
	if p.got(tok) {
		return nil
	}
	return p.expected(fmt.Sprintf("'%s' %s", tok, context))
}

// ----------------------------------------------------------------------------
// Error helpers

func (p *Parser) expected(what string) error {
	if p.tok.IsEOF() {
		return p.eof(what)
	}
	return &ParseError{
		Kind: ExpectedToken,
		Pos:  p.pos,
		Msg:  fmt.Sprintf("expected %s, found %s", what, p.cur),
	}
}

func (p *Parser) unexpected() error {
	if p.tok.IsEOF() {
		return p.eof("expression")
	}
	return &ParseError{
		Kind: UnexpectedToken,
		Pos:  p.pos,
		Msg:  fmt.Sprintf("unexpected token %s", p.cur),
	}
}

func (p *Parser) eof(what string) error {
	return &ParseError{
		Kind: UnexpectedEOF,
		Pos:  p.pos,
		Msg:  "unexpected end of input, expected " + what,
	}
}

// ----------------------------------------------------------------------------
// Entry points

// Program parses stmt (';' stmt)*.
//
// A statement followed by anything other than ';' ends the program; the
// remaining tokens are discarded. One statement is returned as is, more
// are wrapped in a Block.
func (p *Parser) Program() (Expr, error) {
	return p.stmtList()
}

// stmtList parses stmt (';' stmt)*.
func (p *Parser) stmtList() (Expr, error) {
	first, err := p.Statement()
	if err != nil {
		return nil, err
	}
	stmts := []Expr{first}
	for p.got(_Semi) {
		s, err := p.Statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if len(stmts) == 1 {
		return first, nil
	}
	b := NewBlock(stmts...)
	b.pos = first.Pos()
	return b, nil
}

// Statement parses let | fn_def | print | expr.
func (p *Parser) Statement() (Expr, error) {
	switch p.tok {
	case _Let:
		return p.letStmt()
	case _Fn:
		return p.fnDef()
	case _Print:
		return p.printStmt()
	}
	return p.expr()
}


// ----------------------------------------------------------------------------
// Statements

// letStmt parses: let Name = expr
func (p *Parser) letStmt() (Expr, error) {
	n := &Let{}
	n.pos = p.pos
	p.advance()

	name, err := p.name("after 'let'")
	if err != nil {
		return nil, err
	}
	n.Name = name
	if err := p.want(_Eq, "after identifier in let statement"); err != nil {
		return nil, err
	}
	if n.Value, err = p.expr(); err != nil {
		return nil, err
	}
	return n, nil
}

// fnDef parses: fn Name(Params) { expr }
func (p *Parser) fnDef() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	n := &FnDef{}
	n.pos = p.pos
	p.advance()

	name, err := p.name("after 'fn'")
	if err != nil {
		return nil, err
	}
	n.Name = name
	if err := p.want(_Lparen, "after function name"); err != nil {
		return nil, err
	}
	if !p.got(_Rparen) {
		for {
			param, err := p.name("in parameter list")
			if err != nil {
				return nil, err
			}
			n.Params = append(n.Params, param)
			if p.got(_Comma) {
				continue
			}
			if p.got(_Rparen) {
				break
			}
			return nil, p.expected("',' or ')' in parameter list")
		}
	}
	if err := p.want(_Lbrace, "before function body"); err != nil {
		return nil, err
	}
	if p.mode&BlockBodies != 0 {
		n.Body, err = p.stmtList()
	} else {
		n.Body, err = p.expr()
	}
	if err != nil {
		return nil, err
	}
	if err := p.want(_Rbrace, "after function body"); err != nil {
		return nil, err
	}
	return n, nil
}

// printStmt parses: print(expr)
func (p *Parser) printStmt() (Expr, error) {
	n := &Print{}
	n.pos = p.pos
	p.advance()

	if err := p.want(_Lparen, "after 'print'"); err != nil {
		return nil, err
	}
	var err error
	if n.X, err = p.expr(); err != nil {
		return nil, err
	}
	if err := p.want(_Rparen, "after print argument"); err != nil {
		return nil, err
	}
	return n, nil
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses term (('+'|'-') term)*.
func (p *Parser) expr() (Expr, error) {
	return p.binary(1)
}

// binary parses a left-associative chain of operators at precedence prec
// or higher. Level 1 is expr, level 2 is term.
func (p *Parser) binary(prec int) (Expr, error) {
	var x Expr
	var err error
	if prec == 2 {
		x, err = p.factor()
	} else {
		x, err = p.binary(prec + 1)
	}
	if err != nil {
		return nil, err
	}

	for p.tok.Precedence() == prec {
		op := p.tok
		p.advance()
		var y Expr
		if prec == 2 {
			y, err = p.factor()
		} else {
			y, err = p.binary(prec + 1)
		}
		if err != nil {
			return nil, err
		}
		b := NewBinary(x, op, y)
		b.pos = x.Pos()
		x = b
	}
	return x, nil
}

// factor parses Number | String | Name [call] | '(' expr ')'.
func (p *Parser) factor() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.tok {
	case _Number:
		v, err := strconv.ParseInt(p.lit, 10, 64)
		if err != nil {
			return nil, &ParseError{
				Kind: UnexpectedToken,
				Pos:  p.pos,
				Msg:  fmt.Sprintf("integer literal out of range: %s", p.cur),
			}
		}
		n := NewNumber(v)
		n.pos = p.pos
		p.advance()
		return n, nil

	case _String:
		n := NewString(p.lit)
		n.pos = p.pos
		p.advance()
		return n, nil

	case _Name:
		name, pos := p.lit, p.pos
		p.advance()
		if p.tok != _Lparen {
			v := NewVar(name)
			v.pos = pos
			return v, nil
		}
		p.advance()
		args, err := p.argList()
		if err != nil {
			return nil, err
		}
		c := NewFnCall(name, args...)
		c.pos = pos
		return c, nil

	case _Lparen:
		p.advance()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.want(_Rparen, "to close parenthesized expression"); err != nil {
			return nil, err
		}
		return x, nil
	}

	return nil, p.unexpected()
}

// argList parses the arguments of a call after the opening parenthesis.
func (p *Parser) argList() ([]Expr, error) {
	var args []Expr
	if p.got(_Rparen) {
		return args, nil
	}
	for {
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.got(_Comma) {
			continue
		}
		if p.got(_Rparen) {
			return args, nil
		}
		return nil, p.expected("',' or ')' in argument list")
	}
}

// ----------------------------------------------------------------------------
// Helper methods

// enter records one level of syntactic nesting.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxNesting {
		return &ParseError{Kind: UnexpectedToken, Pos: p.pos, Msg: "expression nested too deeply"}
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// name consumes an identifier and returns its text.
func (p *Parser) name(context string) (string, error) {
	if p.tok != _Name {
		return "", p.expected("identifier " + context)
	}
	name := p.lit
	p.advance()
	return name, nil
}
