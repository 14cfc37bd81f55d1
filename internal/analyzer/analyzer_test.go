package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewd/internal/config"
	"reviewd/internal/issue"
	"reviewd/internal/rules"
)

func testAnalysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		MaxLineLength:       120,
		MaxFileLength:       500,
		ComplexityThreshold: 10,
		MaxFunctionLength:   50,
		MaxParameters:       5,
	}
}

func TestGoWalkerMetrics(t *testing.T) {
	src := `package demo

// Widget holds state.
type Widget struct{}

type hidden struct{}

func pick(a, b int, c string) int {
	if a > 0 && b > 0 {
		return a
	}
	for i := 0; i < b; i++ {
		a += i
	}
	switch c {
	case "x":
		return 1
	case "y":
		return 2
	default:
		return 3
	}
}
`
	report, err := NewGoWalker().Walk(src)
	require.NoError(t, err)

	require.Len(t, report.Functions, 1)
	fn := report.Functions[0]
	assert.Equal(t, "pick", fn.Name)
	assert.Equal(t, 3, fn.Params)
	// if + && + for + two non-default cases
	assert.Equal(t, 6, fn.Complexity)

	require.Len(t, report.Types, 2)
	assert.True(t, report.Types[0].Documented)
	assert.False(t, report.Types[1].Documented)
}

func TestGoWalkerSyntaxError(t *testing.T) {
	_, err := NewGoWalker().Walk("package demo\n\nfunc broken( {\n")
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, 3, perr.Line)
}

func TestPythonWalkerMetrics(t *testing.T) {
	src := `class Store:
    """Keyed storage."""

    def get(self, key, default):
        if key in self.data:
            return self.data[key]
        return default

class Bare:
    def run(self):
        for item in self.items:
            if item and item.ok:
                yield item
`
	report, err := NewPythonWalker().Walk(src)
	require.NoError(t, err)

	require.Len(t, report.Types, 2)
	assert.Equal(t, "Store", report.Types[0].Name)
	assert.True(t, report.Types[0].Documented)
	assert.Equal(t, "Bare", report.Types[1].Name)
	assert.False(t, report.Types[1].Documented)

	require.Len(t, report.Functions, 2)
	get := report.Functions[0]
	assert.Equal(t, "get", get.Name)
	assert.Equal(t, 3, get.Params)
	assert.Equal(t, 2, get.Complexity)

	run := report.Functions[1]
	// for + if + and
	assert.Equal(t, 4, run.Complexity)
}

func TestPythonWalkerSyntaxError(t *testing.T) {
	_, err := NewPythonWalker().Walk("def broken(:\n    pass\n")
	require.Error(t, err)
	_, ok := err.(*ParseError)
	assert.True(t, ok)
}

func TestQualityEngineHighComplexity(t *testing.T) {
	var b strings.Builder
	b.WriteString("def handler(flag):\n    total = 0\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "    if flag == %d:\n        total += %d\n", i, i)
	}
	b.WriteString("    return total\n")

	engine := NewQualityEngine(testAnalysisConfig(), rules.Default(), nil)
	issues := engine.Analyze(b.String(), "python", "handler.py")

	var complexity []issue.Issue
	for _, iss := range issues {
		if strings.Contains(iss.Message, "complexity") {
			complexity = append(complexity, iss)
		}
	}
	require.Len(t, complexity, 1)
	assert.Equal(t, issue.KindQuality, complexity[0].Kind)
	assert.Equal(t, issue.SeverityMedium, complexity[0].Severity)
	assert.Contains(t, complexity[0].Message, "'handler'")
	assert.Equal(t, 1, complexity[0].Line)
}

func TestQualityEngineLineChecks(t *testing.T) {
	content := "short\n" + strings.Repeat("x", 130) + "\ntrailing  \n"
	engine := NewQualityEngine(testAnalysisConfig(), rules.Default(), nil)
	issues := engine.Analyze(content, "text", "notes.txt")

	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, "too long (130 characters)")
	assert.Equal(t, 2, issues[0].Line)
	assert.Contains(t, issues[1].Message, "trailing whitespace")
	assert.Equal(t, 3, issues[1].Line)
	for _, iss := range issues {
		assert.Equal(t, issue.SeverityLow, iss.Severity)
		assert.Equal(t, issue.SourceStatic, iss.Source)
	}
}

func TestQualityEngineSyntaxErrorSuppressesOnlyStructuralPass(t *testing.T) {
	src := "package demo\n\nfunc main() {\n\tfmt.Println(\"hi\")\n"
	engine := NewQualityEngine(testAnalysisConfig(), rules.Default(), nil)
	issues := engine.Analyze(src, "go", "main.go")

	var syntax, other []issue.Issue
	for _, iss := range issues {
		if strings.HasPrefix(iss.Message, "Syntax error:") {
			syntax = append(syntax, iss)
		} else {
			other = append(other, iss)
		}
	}
	require.Len(t, syntax, 1)
	assert.Equal(t, issue.SeverityHigh, syntax[0].Severity)

	// The regex pass still runs on a file that does not parse.
	found := false
	for _, iss := range other {
		if strings.Contains(iss.Message, "fmt.Print") {
			found = true
		}
	}
	assert.True(t, found, "expected the fmt.Print rule to fire")
}

func TestQualityEngineLongFunction(t *testing.T) {
	var b strings.Builder
	b.WriteString("def sprawl():\n")
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "    step_%d = %d\n", i, i)
	}
	engine := NewQualityEngine(testAnalysisConfig(), rules.Default(), nil)
	issues := engine.Analyze(b.String(), "python", "sprawl.py")

	found := false
	for _, iss := range issues {
		if strings.Contains(iss.Message, "'sprawl' is too long") {
			found = true
			assert.Equal(t, issue.SeverityMedium, iss.Severity)
		}
	}
	assert.True(t, found)
}

func TestQualityEngineTooManyParameters(t *testing.T) {
	src := "def build(a, b, c, d, e, f, g):\n    return a\n"
	engine := NewQualityEngine(testAnalysisConfig(), rules.Default(), nil)
	issues := engine.Analyze(src, "python", "build.py")

	found := false
	for _, iss := range issues {
		if strings.Contains(iss.Message, "many parameters (7)") {
			found = true
			assert.Equal(t, issue.SeverityLow, iss.Severity)
		}
	}
	assert.True(t, found)
}

func TestQualityEngineUnknownLanguage(t *testing.T) {
	engine := NewQualityEngine(testAnalysisConfig(), rules.Default(), nil)
	issues := engine.Analyze("plain text, nothing to see\n", "text", "readme.txt")
	assert.Empty(t, issues)
}

func TestPerformanceEnginePython(t *testing.T) {
	src := "for i in range(len(items)):\n    print(items[i])\n"
	engine := NewPerformanceEngine(rules.Default(), nil)
	issues := engine.Analyze(src, "python", "loop.py")

	require.NotEmpty(t, issues)
	assert.Equal(t, issue.KindPerformance, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "enumerate()")
	assert.Equal(t, 1, issues[0].Line)
}

func TestPerformanceEngineNoRules(t *testing.T) {
	engine := NewPerformanceEngine(rules.Default(), nil)
	assert.Empty(t, engine.Analyze("anything", "text", "f.txt"))
}
