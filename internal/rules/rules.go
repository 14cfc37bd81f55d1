package rules

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"reviewd/internal/issue"
)

// Rule is one fixed scanning rule. Severity and weakness classification are
// part of the rule definition, never computed at match time.
type Rule struct {
	ID         string
	Severity   issue.Severity
	WeaknessID string
	Message    string

	re *regexp.Regexp
}

// NewRule compiles a rule. It panics on a bad pattern; builtin tables are
// validated by tests and pack files go through Compile instead.
func NewRule(id, pattern string, sev issue.Severity, weaknessID, message string) Rule {
	return Rule{
		ID:         id,
		Severity:   sev,
		WeaknessID: weaknessID,
		Message:    message,
		re:         regexp.MustCompile(pattern),
	}
}

// Compile builds a rule from an uncompiled spec, returning pattern errors
// instead of panicking.
func Compile(id, pattern string, sev issue.Severity, weaknessID, message string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, err
	}
	return Rule{ID: id, Severity: sev, WeaknessID: weaknessID, Message: message, re: re}, nil
}

// Match is one occurrence of a rule in a file.
type Match struct {
	Line int
}

// Matches returns every occurrence of the rule in content, with 1-based
// line numbers derived from the match offsets.
func (r Rule) Matches(content string) []Match {
	locs := r.re.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match{Line: LineAt(content, loc[0])})
	}
	return matches
}

// Apply runs the rule against content and materializes issues of the given
// kind and source at path.
func (r Rule) Apply(content, path string, kind issue.Kind, source issue.Source) []issue.Issue {
	var out []issue.Issue
	for _, m := range r.Matches(content) {
		out = append(out, issue.Issue{
			Kind:       kind,
			Severity:   r.Severity,
			Message:    r.Message,
			Line:       m.Line,
			FilePath:   path,
			Source:     source,
			WeaknessID: r.WeaknessID,
		})
	}
	return out
}

// LineAt converts a byte offset into a 1-based line number by counting the
// newlines that precede it.
func LineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}

// Bundle is the fixed-shape rule set for one language.
type Bundle struct {
	Language    string
	Quality     []Rule
	Security    []Rule // language-specific overlay on top of the common catalog
	Performance []Rule
}

// Registry maps language identifiers to rule bundles.
type Registry struct {
	bundles map[string]*Bundle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bundles: make(map[string]*Bundle)}
}

// Register adds or replaces the bundle for its language.
func (r *Registry) Register(b *Bundle) {
	r.bundles[b.Language] = b
}

// Bundle returns the bundle registered for lang, resolving aliases for
// languages that share a rule set.
func (r *Registry) Bundle(lang string) (*Bundle, bool) {
	b, ok := r.bundles[bundleLanguage(lang)]
	return b, ok
}

// Languages returns the registered language identifiers, sorted.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.bundles))
	for l := range r.bundles {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Default returns a registry populated with the builtin bundles.
func Default() *Registry {
	r := NewRegistry()
	for _, b := range builtinBundles() {
		r.Register(b)
	}
	return r
}

// extLanguages maps supported file extensions to language identifiers.
// TypeScript shares the JavaScript bundle.
var extLanguages = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".java": "java",
	".cpp":  "cpp",
	".cc":   "cpp",
	".h":    "cpp",
	".go":   "go",
	".rs":   "rust",
}

// LanguageFor returns the language identifier for a file path, or "unknown".
func LanguageFor(path string) string {
	if lang, ok := extLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "unknown"
}

// bundleLanguage resolves aliases so languages sharing a rule set resolve to
// one bundle.
func bundleLanguage(lang string) string {
	if lang == "typescript" {
		return "javascript"
	}
	return lang
}
