package analyzer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"reviewd/internal/config"
	"reviewd/internal/issue"
	"reviewd/internal/logging"
	"reviewd/internal/rules"
)

// QualityEngine produces quality issues for one file: the language's regex
// rules, the language-agnostic line checks, and (where a walker is
// registered) the structural pass.
type QualityEngine struct {
	cfg      config.AnalysisConfig
	registry *rules.Registry
	walkers  map[string]Walker
	log      *zap.Logger
}

// NewQualityEngine builds a quality engine around the given catalog.
func NewQualityEngine(cfg config.AnalysisConfig, registry *rules.Registry, log *zap.Logger) *QualityEngine {
	return &QualityEngine{
		cfg:      cfg,
		registry: registry,
		walkers:  defaultWalkers(),
		log:      logging.OrNop(log),
	}
}

// Analyze runs all quality passes over content. Order is stable: rule table,
// line checks, structural pass.
func (e *QualityEngine) Analyze(content, language, path string) []issue.Issue {
	var issues []issue.Issue

	if bundle, ok := e.registry.Bundle(language); ok {
		for _, rule := range bundle.Quality {
			issues = append(issues, rule.Apply(content, path, issue.KindQuality, issue.SourceStatic)...)
		}
	}

	issues = append(issues, e.lineChecks(content, path)...)

	if walker, ok := e.walkers[language]; ok {
		issues = append(issues, e.structural(walker, content, path)...)
	}

	return issues
}

// lineChecks flags over-long lines and trailing whitespace in any language.
func (e *QualityEngine) lineChecks(content, path string) []issue.Issue {
	maxLen := e.cfg.MaxLineLength
	if maxLen <= 0 {
		maxLen = 120
	}

	var issues []issue.Issue
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		if len(line) > maxLen {
			issues = append(issues, issue.Issue{
				Kind:     issue.KindQuality,
				Severity: issue.SeverityLow,
				Message:  fmt.Sprintf("Line %d is too long (%d characters). Consider breaking it up.", lineNo, len(line)),
				Line:     lineNo,
				FilePath: path,
				Source:   issue.SourceStatic,
			})
		}
		if strings.TrimRight(line, " \t\r") != line {
			issues = append(issues, issue.Issue{
				Kind:     issue.KindQuality,
				Severity: issue.SeverityLow,
				Message:  fmt.Sprintf("Line %d has trailing whitespace.", lineNo),
				Line:     lineNo,
				FilePath: path,
				Source:   issue.SourceStatic,
			})
		}
	}
	return issues
}

// structural runs the complexity walk. A parse failure suppresses only this
// pass and surfaces as one high-severity issue at the parser's position.
func (e *QualityEngine) structural(walker Walker, content, path string) []issue.Issue {
	var issues []issue.Issue

	lines := strings.Count(content, "\n") + 1
	if e.cfg.MaxFileLength > 0 && lines > e.cfg.MaxFileLength {
		issues = append(issues, issue.Issue{
			Kind:     issue.KindQuality,
			Severity: issue.SeverityMedium,
			Message:  fmt.Sprintf("File is too long (%d lines). Consider splitting into smaller modules.", lines),
			FilePath: path,
			Source:   issue.SourceStatic,
		})
	}

	report, err := walker.Walk(content)
	if err != nil {
		perr, ok := err.(*ParseError)
		if !ok {
			perr = &ParseError{Line: 1, Column: 1, Msg: err.Error()}
		}
		e.log.Debug("structural pass skipped", zap.String("path", path), zap.Error(err))
		return append(issues, issue.Issue{
			Kind:     issue.KindQuality,
			Severity: issue.SeverityHigh,
			Message:  fmt.Sprintf("Syntax error: %s", perr.Msg),
			Line:     perr.Line,
			Column:   perr.Column,
			FilePath: path,
			Source:   issue.SourceStatic,
		})
	}

	for _, fn := range report.Functions {
		if e.cfg.MaxFunctionLength > 0 && fn.Length > e.cfg.MaxFunctionLength {
			issues = append(issues, issue.Issue{
				Kind:     issue.KindQuality,
				Severity: issue.SeverityMedium,
				Message:  fmt.Sprintf("Function '%s' is too long (%d lines). Consider refactoring.", fn.Name, fn.Length),
				Line:     fn.Line,
				FilePath: path,
				Source:   issue.SourceStatic,
			})
		}
		if e.cfg.ComplexityThreshold > 0 && fn.Complexity > e.cfg.ComplexityThreshold {
			issues = append(issues, issue.Issue{
				Kind:     issue.KindQuality,
				Severity: issue.SeverityMedium,
				Message:  fmt.Sprintf("Function '%s' has high complexity (%d). Consider simplifying.", fn.Name, fn.Complexity),
				Line:     fn.Line,
				FilePath: path,
				Source:   issue.SourceStatic,
			})
		}
		if e.cfg.MaxParameters > 0 && fn.Params > e.cfg.MaxParameters {
			issues = append(issues, issue.Issue{
				Kind:     issue.KindQuality,
				Severity: issue.SeverityLow,
				Message:  fmt.Sprintf("Function '%s' has many parameters (%d). Consider using a data structure.", fn.Name, fn.Params),
				Line:     fn.Line,
				FilePath: path,
				Source:   issue.SourceStatic,
			})
		}
	}

	for _, t := range report.Types {
		if !t.Documented {
			issues = append(issues, issue.Issue{
				Kind:     issue.KindQuality,
				Severity: issue.SeverityLow,
				Message:  fmt.Sprintf("%s '%s' is missing a documentation comment.", title(t.Kind), t.Name),
				Line:     t.Line,
				FilePath: path,
				Source:   issue.SourceStatic,
			})
		}
	}

	return issues
}

func title(s string) string {
	if s == "" {
		return "Type"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
