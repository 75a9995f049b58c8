package script

import (
	"fmt"

	"github.com/Knetic/govaluate"
)

// elemExpr is an expression evaluated per element. The element is
// bound to v, its index to i and the list length to n.
type elemExpr struct {
	expr   *govaluate.EvaluableExpression
	params govaluate.MapParameters
}

func newElemExpr(s string) (*elemExpr, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("missing expr")
	}
	expr, err := govaluate.NewEvaluableExpression(s)
	if err != nil {
		return nil, fmt.Errorf("invalid expr %q: %w", s, err)
	}
	for _, name := range expr.Vars() {
		switch name {
		case "v", "i", "n":
		default:
			return nil, fmt.Errorf("unknown variable %s in expr %q", name, s)
		}
	}
	return &elemExpr{
		expr:   expr,
		params: make(govaluate.MapParameters, 3),
	}, nil
}

func (e *elemExpr) eval(v any, i, n int) (any, error) {
	e.params["v"] = v
	e.params["i"] = float64(i)
	e.params["n"] = float64(n)
	out, err := e.expr.Eval(e.params)
	if err != nil {
		return nil, fmt.Errorf("expr %s: %w", e.expr.String(), err)
	}
	return normalize(out), nil
}

func (e *elemExpr) match(v any, i, n int) (bool, error) {
	out, err := e.eval(v, i, n)
	if err != nil {
		return false, err
	}
	res, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expr %s returned non-boolean: %v", e.expr.String(), out)
	}
	return res, nil
}

// normalize turns every numeric value into a float64, the number type
// of both govaluate and the snapshot codec.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

func normalizeAll(vs []any) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = normalize(v)
	}
	return out
}
