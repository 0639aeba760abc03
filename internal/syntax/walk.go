package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(e Expr) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(e Expr, v Visitor) {
	if e == nil || !v(e) {
		return
	}

	switch n := e.(type) {
	case *Number, *String, *Var:
		// leaves

	case *Let:
		Walk(n.Value, v)

	case *FnDef:
		Walk(n.Body, v)

	case *FnCall:
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *Binary:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *Print:
		Walk(n.X, v)
	}
}
