package analyzer

import (
	"go.uber.org/zap"

	"reviewd/internal/issue"
	"reviewd/internal/logging"
	"reviewd/internal/rules"
)

// PerformanceEngine flags performance anti-patterns from the language's rule
// table. Languages without performance rules produce nothing.
type PerformanceEngine struct {
	registry *rules.Registry
	log      *zap.Logger
}

func NewPerformanceEngine(registry *rules.Registry, log *zap.Logger) *PerformanceEngine {
	return &PerformanceEngine{registry: registry, log: logging.OrNop(log)}
}

func (e *PerformanceEngine) Analyze(content, language, path string) []issue.Issue {
	bundle, ok := e.registry.Bundle(language)
	if !ok {
		return nil
	}
	var issues []issue.Issue
	for _, rule := range bundle.Performance {
		issues = append(issues, rule.Apply(content, path, issue.KindPerformance, issue.SourceStatic)...)
	}
	return issues
}
