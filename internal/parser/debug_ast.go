package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"easycode/internal/ast"
)

// WalkAST recursively traverses an AST and serializes it into a map structure for JSON output.
func WalkAST(node ast.Node) interface{} {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return nil
	}

	switch n := node.(type) {
	case *ast.Block:
		return map[string]interface{}{
			"type":       "Block",
			"position":   position(n),
			"statements": walkAll(n.Statements),
		}

	case *ast.NumberLiteral:
		var value interface{} = n.Int
		if n.IsFloat {
			value = n.Float
		}
		return map[string]interface{}{
			"type":     "NumberLiteral",
			"position": position(n),
			"token":    n.TokenLiteral(),
			"value":    value,
		}

	case *ast.StringLiteral:
		return map[string]interface{}{
			"type":     "StringLiteral",
			"position": position(n),
			"value":    n.Value,
		}

	case *ast.ListLiteral:
		return map[string]interface{}{
			"type":     "ListLiteral",
			"position": position(n),
			"elements": walkAll(n.Elements),
		}

	case *ast.VarAccess:
		return map[string]interface{}{
			"type":     "VarAccess",
			"position": position(n),
			"name":     n.Name.Literal,
		}

	case *ast.VarAssign:
		return map[string]interface{}{
			"type":     "VarAssign",
			"position": position(n),
			"name":     n.Name.Literal,
			"value":    WalkAST(n.Value),
		}

	case *ast.BinaryOp:
		return map[string]interface{}{
			"type":     "BinaryOp",
			"position": position(n),
			"operator": n.Operator.Literal,
			"left":     WalkAST(n.Left),
			"right":    WalkAST(n.Right),
		}

	case *ast.UnaryOp:
		return map[string]interface{}{
			"type":     "UnaryOp",
			"position": position(n),
			"operator": n.Operator.Literal,
			"operand":  WalkAST(n.Operand),
		}

	case *ast.If:
		cases := make([]interface{}, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = map[string]interface{}{
				"condition":   WalkAST(c.Condition),
				"body":        WalkAST(c.Body),
				"returnsNull": c.ReturnsNull,
			}
		}
		var elseCase interface{}
		if n.Else != nil {
			elseCase = map[string]interface{}{
				"body":        WalkAST(n.Else.Body),
				"returnsNull": n.Else.ReturnsNull,
			}
		}
		return map[string]interface{}{
			"type":     "If",
			"position": position(n),
			"cases":    cases,
			"else":     elseCase,
		}

	case *ast.For:
		return map[string]interface{}{
			"type":        "For",
			"position":    position(n),
			"var":         n.Var.Literal,
			"from":        WalkAST(n.From),
			"to":          WalkAST(n.To),
			"step":        WalkAST(n.Step),
			"body":        WalkAST(n.Body),
			"returnsNull": n.ReturnsNull,
		}

	case *ast.While:
		return map[string]interface{}{
			"type":        "While",
			"position":    position(n),
			"condition":   WalkAST(n.Condition),
			"body":        WalkAST(n.Body),
			"returnsNull": n.ReturnsNull,
		}

	case *ast.FuncDef:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Literal
		}
		var name interface{}
		if n.Name != nil {
			name = n.Name.Literal
		}
		return map[string]interface{}{
			"type":       "FuncDef",
			"position":   position(n),
			"name":       name,
			"parameters": params,
			"body":       WalkAST(n.Body),
			"autoReturn": n.AutoReturn,
		}

	case *ast.Call:
		return map[string]interface{}{
			"type":      "Call",
			"position":  position(n),
			"callee":    WalkAST(n.Callee),
			"arguments": walkAll(n.Args),
		}

	case *ast.Return:
		return map[string]interface{}{
			"type":     "Return",
			"position": position(n),
			"value":    WalkAST(n.Value),
		}

	case *ast.Continue:
		return map[string]interface{}{"type": "Continue", "position": position(n)}

	case *ast.Break:
		return map[string]interface{}{"type": "Break", "position": position(n)}

	default:
		return map[string]interface{}{
			"type": "Unknown",
			"node": fmt.Sprintf("%T", n),
		}
	}
}

func walkAll(nodes []ast.Node) []interface{} {
	result := make([]interface{}, len(nodes))
	for i, n := range nodes {
		result[i] = WalkAST(n)
	}
	return result
}

// position is one based, as printed in diagnostics.
func position(node ast.Node) map[string]int {
	return map[string]int{
		"line":   node.Pos().Line + 1,
		"column": node.Pos().Column + 1,
	}
}

func RenderASTAsJSON(node ast.Node) (string, error) {
	astMap := WalkAST(node)
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(astMap); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.String(), nil
}
