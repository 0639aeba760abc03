package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, e Expr) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(e))
}

func toJSON(e Expr) interface{} {
	if e == nil {
		return nil
	}

	switch n := e.(type) {
	case *Number:
		return map[string]interface{}{
			"type":  "Number",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *String:
		return map[string]interface{}{
			"type":  "String",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *Var:
		return map[string]interface{}{
			"type": "Var",
			"pos":  n.pos.String(),
			"name": n.Name,
		}

	case *Let:
		return map[string]interface{}{
			"type":  "Let",
			"pos":   n.pos.String(),
			"name":  n.Name,
			"value": toJSON(n.Value),
		}

	case *FnDef:
		params := n.Params
		if params == nil {
			params = []string{}
		}
		return map[string]interface{}{
			"type":   "FnDef",
			"pos":    n.pos.String(),
			"name":   n.Name,
			"params": params,
			"body":   toJSON(n.Body),
		}

	case *FnCall:
		return map[string]interface{}{
			"type": "FnCall",
			"pos":  n.pos.String(),
			"name": n.Name,
			"args": mapSlice(n.Args, toJSON),
		}

	case *Binary:
		return map[string]interface{}{
			"type": "Binary",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *Block:
		return map[string]interface{}{
			"type":  "Block",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, toJSON),
		}

	case *Print:
		return map[string]interface{}{
			"type": "Print",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}
	}

	return map[string]interface{}{"type": "unknown"}
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
