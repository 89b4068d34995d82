// Package jsast confirms JavaScript findings by parsing the flagged line.
// A lexical match inside a string literal or a comment is not a real call;
// parsing lets strict mode drop those without changing the scan contract.
package jsast

import (
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// Parse parses the given JavaScript code and returns the AST program.
func Parse(code string) (*ast.Program, error) {
	return parser.ParseFile(nil, "", code, 0)
}

// ConfirmEval reports whether the line contains a real eval(...) call or a
// new Function(...) expression. Lines that do not parse on their own (e.g.
// a fragment of a multi-line statement) keep their lexical finding.
func ConfirmEval(line string) bool {
	prog, err := Parse(line)
	if err != nil {
		return true
	}

	found := false
	walk(prog, func(n ast.Node) {
		switch e := n.(type) {
		case *ast.CallExpression:
			if calleeName(e.Callee) == "eval" {
				found = true
			}
		case *ast.NewExpression:
			if calleeName(e.Callee) == "Function" {
				found = true
			}
		}
	})
	return found
}

// ConfirmStringTimer reports whether the line contains a setTimeout or
// setInterval call whose first argument is a string literal. Unparseable
// lines keep their lexical finding.
func ConfirmStringTimer(line string) bool {
	prog, err := Parse(line)
	if err != nil {
		return true
	}

	found := false
	walk(prog, func(n ast.Node) {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return
		}
		name := calleeName(call.Callee)
		if name != "setTimeout" && name != "setInterval" {
			return
		}
		if len(call.ArgumentList) == 0 {
			return
		}
		switch call.ArgumentList[0].(type) {
		case *ast.StringLiteral, *ast.TemplateLiteral:
			found = true
		}
	})
	return found
}

// calleeName resolves the identifier a call targets, looking through dot
// expressions so window.eval and window.setTimeout resolve too.
func calleeName(e ast.Expression) string {
	switch callee := e.(type) {
	case *ast.Identifier:
		return string(callee.Name)
	case *ast.DotExpression:
		return string(callee.Identifier.Name)
	}
	return ""
}

// walk traverses the AST, visiting every node it knows about. Single lines
// only ever produce a handful of statements, so the coverage below is the
// expression-heavy subset.
func walk(node ast.Node, visit func(ast.Node)) {
	if node == nil {
		return
	}
	visit(node)

	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Body {
			walk(stmt, visit)
		}
	case *ast.BlockStatement:
		for _, stmt := range n.List {
			walk(stmt, visit)
		}
	case *ast.ExpressionStatement:
		walk(n.Expression, visit)
	case *ast.IfStatement:
		walk(n.Test, visit)
		walk(n.Consequent, visit)
		walk(n.Alternate, visit)
	case *ast.ReturnStatement:
		walk(n.Argument, visit)
	case *ast.ThrowStatement:
		walk(n.Argument, visit)
	case *ast.VariableStatement:
		for _, b := range n.List {
			walk(b, visit)
		}
	case *ast.LexicalDeclaration:
		for _, b := range n.List {
			walk(b, visit)
		}
	case *ast.Binding:
		walk(n.Initializer, visit)
	case *ast.AssignExpression:
		walk(n.Left, visit)
		walk(n.Right, visit)
	case *ast.BinaryExpression:
		walk(n.Left, visit)
		walk(n.Right, visit)
	case *ast.UnaryExpression:
		walk(n.Operand, visit)
	case *ast.ConditionalExpression:
		walk(n.Test, visit)
		walk(n.Consequent, visit)
		walk(n.Alternate, visit)
	case *ast.SequenceExpression:
		for _, e := range n.Sequence {
			walk(e, visit)
		}
	case *ast.CallExpression:
		walk(n.Callee, visit)
		for _, arg := range n.ArgumentList {
			walk(arg, visit)
		}
	case *ast.NewExpression:
		walk(n.Callee, visit)
		for _, arg := range n.ArgumentList {
			walk(arg, visit)
		}
	case *ast.DotExpression:
		walk(n.Left, visit)
	case *ast.BracketExpression:
		walk(n.Left, visit)
		walk(n.Member, visit)
	case *ast.FunctionDeclaration:
		walk(n.Function, visit)
	case *ast.FunctionLiteral:
		walk(n.Body, visit)
	case *ast.ArrowFunctionLiteral:
		walk(n.Body, visit)
	case *ast.ObjectLiteral:
		for _, prop := range n.Value {
			if keyed, ok := prop.(*ast.PropertyKeyed); ok {
				walk(keyed.Value, visit)
			}
		}
	case *ast.ArrayLiteral:
		for _, e := range n.Value {
			walk(e, visit)
		}
	}
}
