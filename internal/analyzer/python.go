package analyzer

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonWalker walks Python source with Tree-sitter.
type PythonWalker struct {
	parser *sitter.Parser
}

// NewPythonWalker returns a structural walker for Python files.
func NewPythonWalker() *PythonWalker {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &PythonWalker{parser: parser}
}

func (w *PythonWalker) Walk(content string) (*StructuralReport, error) {
	src := []byte(content)
	tree, err := w.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, &ParseError{Line: 1, Column: 1, Msg: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstErrorNode(root); bad != nil {
			return nil, &ParseError{
				Line:   int(bad.StartPoint().Row) + 1,
				Column: int(bad.StartPoint().Column) + 1,
				Msg:    "invalid syntax",
			}
		}
		return nil, &ParseError{Line: 1, Column: 1, Msg: "invalid syntax"}
	}

	report := &StructuralReport{}
	walkTree(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition":
			report.Functions = append(report.Functions, w.funcMetrics(n, src))
		case "class_definition":
			name := ""
			if id := n.ChildByFieldName("name"); id != nil {
				name = id.Content(src)
			}
			report.Types = append(report.Types, TypeMetrics{
				Name:       name,
				Line:       int(n.StartPoint().Row) + 1,
				Kind:       "class",
				Documented: hasDocstring(n, src),
			})
		}
	})

	return report, nil
}

func (w *PythonWalker) funcMetrics(n *sitter.Node, src []byte) FunctionMetrics {
	name := ""
	if id := n.ChildByFieldName("name"); id != nil {
		name = id.Content(src)
	}

	params := 0
	if p := n.ChildByFieldName("parameters"); p != nil {
		params = int(p.NamedChildCount())
	}

	return FunctionMetrics{
		Name:       name,
		Line:       int(n.StartPoint().Row) + 1,
		Complexity: pythonComplexity(n),
		Length:     int(n.EndPoint().Row) - int(n.StartPoint().Row),
		Params:     params,
	}
}

// pythonComplexity counts branches (if/elif, loops, except clauses) and
// boolean-operator joins under the function node. Each boolean_operator node
// is one join, matching the operands-minus-one convention.
func pythonComplexity(fn *sitter.Node) int {
	complexity := 1
	walkTree(fn, func(n *sitter.Node) {
		switch n.Type() {
		case "if_statement", "elif_clause", "while_statement", "for_statement",
			"except_clause", "boolean_operator":
			complexity++
		}
	})
	return complexity
}

// hasDocstring reports whether the first statement of a definition body is a
// string literal.
func hasDocstring(def *sitter.Node, src []byte) bool {
	body := def.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return false
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return false
	}
	t := first.NamedChild(0).Type()
	return t == "string" || strings.HasPrefix(t, "concatenated_string")
}

// walkTree visits every node strictly below n, parents before children.
func walkTree(n *sitter.Node, visit func(*sitter.Node)) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		visit(child)
		walkTree(child, visit)
	}
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstErrorNode(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
