// Package analyzer implements the quality and performance engines: regex
// passes driven by the rule catalog, language-agnostic line checks, and a
// structural pass (cyclomatic complexity, function and file length, missing
// documentation) for languages with a registered walker.
package analyzer
