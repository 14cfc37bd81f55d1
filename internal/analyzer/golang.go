package analyzer

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
)

// GoWalker walks Go source with the standard parser.
type GoWalker struct{}

// NewGoWalker returns a structural walker for Go files.
func NewGoWalker() *GoWalker {
	return &GoWalker{}
}

func (w *GoWalker) Walk(content string) (*StructuralReport, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", content, parser.ParseComments)
	if err != nil {
		if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
			return nil, &ParseError{
				Line:   list[0].Pos.Line,
				Column: list[0].Pos.Column,
				Msg:    list[0].Msg,
			}
		}
		return nil, &ParseError{Line: 1, Column: 1, Msg: err.Error()}
	}

	report := &StructuralReport{}

	ast.Inspect(file, func(n ast.Node) bool {
		switch decl := n.(type) {
		case *ast.FuncDecl:
			report.Functions = append(report.Functions, w.funcMetrics(fset, decl))
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				return true
			}
			for _, spec := range decl.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				report.Types = append(report.Types, TypeMetrics{
					Name:       ts.Name.Name,
					Line:       fset.Position(ts.Pos()).Line,
					Kind:       "type",
					Documented: decl.Doc != nil || ts.Doc != nil,
				})
			}
		}
		return true
	})

	return report, nil
}

func (w *GoWalker) funcMetrics(fset *token.FileSet, fn *ast.FuncDecl) FunctionMetrics {
	start := fset.Position(fn.Pos())
	end := fset.Position(fn.End())

	params := 0
	if fn.Type.Params != nil {
		for _, field := range fn.Type.Params.List {
			n := len(field.Names)
			if n == 0 {
				n = 1 // unnamed parameter
			}
			params += n
		}
	}

	return FunctionMetrics{
		Name:       fn.Name.Name,
		Line:       start.Line,
		Complexity: goComplexity(fn),
		Length:     end.Line - start.Line,
		Params:     params,
	}
}

// goComplexity counts branching constructs and boolean joins in the function
// body: if, for, range, case and comm clauses, plus one per && or ||.
func goComplexity(fn *ast.FuncDecl) int {
	complexity := 1
	if fn.Body == nil {
		return complexity
	}
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt:
			complexity++
		case *ast.CaseClause:
			if node.List != nil { // default clause is not a branch
				complexity++
			}
		case *ast.CommClause:
			if node.Comm != nil {
				complexity++
			}
		case *ast.BinaryExpr:
			if node.Op == token.LAND || node.Op == token.LOR {
				complexity++
			}
		}
		return true
	})
	return complexity
}
