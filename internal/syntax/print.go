package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, e Expr) {
	p := &printer{w: w}
	p.print(e)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(e Expr) {
	if e == nil {
		return
	}

	switch n := e.(type) {
	case *Number:
		p.printf("Number %d %s\n", n.Value, n.pos)

	case *String:
		p.printf("String %q %s\n", n.Value, n.pos)

	case *Var:
		p.printf("Var %s %s\n", n.Name, n.pos)

	case *Let:
		p.printf("Let %s %s\n", n.Name, n.pos)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *FnDef:
		p.printf("FnDef %s(%s) %s\n", n.Name, strings.Join(n.Params, ", "), n.pos)
		p.indent++
		p.printf("Body:\n")
		p.indent++
		p.print(n.Body)
		p.indent -= 2

	case *FnCall:
		p.printf("FnCall %s %s\n", n.Name, n.pos)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *Binary:
		p.printf("Binary %s %s\n", n.Op, n.pos)
		p.indent++
		p.print(n.X)
		p.print(n.Y)
		p.indent--

	case *Block:
		p.printf("Block %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *Print:
		p.printf("Print %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	default:
		p.printf("<%T>\n", e)
	}
}

// ExprString renders e back into cang source form.
// Binary operands are parenthesized only where precedence requires it.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e, 0, -1)
	return b.String()
}

// ExprSummary renders e like ExprString but replaces every operand that is
// not a Number, String or Var with "...". Its length is bounded by the
// node's own text, not by the size of its subtree.
func ExprSummary(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e, 0, 1)
	return b.String()
}

// writeExpr writes e at precedence prec. Operands below depth levels are
// elided; a negative depth renders the whole tree.
func writeExpr(b *strings.Builder, e Expr, prec, depth int) {
	if depth == 0 && !isLeaf(e) {
		b.WriteString("...")
		return
	}
	depth--
	switch n := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Number:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *String:
		b.WriteString(strconv.Quote(n.Value))
	case *Var:
		b.WriteString(n.Name)
	case *Let:
		b.WriteString("let " + n.Name + " = ")
		writeExpr(b, n.Value, 0, depth)
	case *FnDef:
		fmt.Fprintf(b, "fn %s(%s) { ", n.Name, strings.Join(n.Params, ", "))
		writeExpr(b, n.Body, 0, depth)
		b.WriteString(" }")
	case *FnCall:
		b.WriteString(n.Name + "(")
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, a, 0, depth)
		}
		b.WriteString(")")
	case *Binary:
		op := n.Op.Precedence()
		if op < prec {
			b.WriteString("(")
		}
		writeExpr(b, n.X, op, depth)
		b.WriteString(" " + n.Op.String() + " ")
		// left-associative: an equal-precedence right operand needs parens
		writeExpr(b, n.Y, op+1, depth)
		if op < prec {
			b.WriteString(")")
		}
	case *Block:
		for i, s := range n.Stmts {
			if i > 0 {
				b.WriteString("; ")
			}
			writeExpr(b, s, 0, depth)
		}
	case *Print:
		b.WriteString("print(")
		writeExpr(b, n.X, 0, depth)
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

func isLeaf(e Expr) bool {
	switch e.(type) {
	case *Number, *String, *Var:
		return true
	}
	return false
}
