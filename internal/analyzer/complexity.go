package analyzer

import "fmt"

// FunctionMetrics describes one function or method found by a walker.
type FunctionMetrics struct {
	Name       string
	Line       int
	Complexity int
	Length     int // line span of the body
	Params     int
}

// TypeMetrics describes one class or type declaration.
type TypeMetrics struct {
	Name       string
	Line       int
	Kind       string // "class", "type"
	Documented bool
}

// StructuralReport is the result of one structural walk over a file.
type StructuralReport struct {
	Functions []FunctionMetrics
	Types     []TypeMetrics
}

// ParseError reports malformed source. It carries the parser's position so
// the engine can surface it as a single high-severity issue.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Walker produces structural metrics for one language. Implementations are
// registered per language identifier; a missing walker simply means the
// structural pass is skipped for that language.
//
// Cyclomatic complexity is approximated as 1 plus the number of branching
// constructs (conditionals, loops, exception handlers) plus one per
// boolean-operator join.
type Walker interface {
	Walk(content string) (*StructuralReport, error)
}

// defaultWalkers returns the shipped walker set.
func defaultWalkers() map[string]Walker {
	return map[string]Walker{
		"go":     NewGoWalker(),
		"python": NewPythonWalker(),
	}
}
