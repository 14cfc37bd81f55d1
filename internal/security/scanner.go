// Package security scans file content for vulnerability patterns. The common
// catalog applies to every language; each language may add its own overlay,
// and a separate pass looks for committed credentials.
package security

import (
	"go.uber.org/zap"

	"reviewd/internal/config"
	"reviewd/internal/issue"
	"reviewd/internal/logging"
	"reviewd/internal/rules"
)

// Scanner applies the security rule catalog to one file at a time.
type Scanner struct {
	cfg      config.SecurityConfig
	registry *rules.Registry
	catalog  []rules.Rule
	secrets  []rules.Rule
	log      *zap.Logger
}

func NewScanner(cfg config.SecurityConfig, registry *rules.Registry, log *zap.Logger) *Scanner {
	return &Scanner{
		cfg:      cfg,
		registry: registry,
		catalog:  rules.SecurityCatalog(),
		secrets:  rules.SecretPatterns(),
		log:      logging.OrNop(log),
	}
}

// Scan returns every security finding in content. The common catalog runs
// first, then the language overlay, then (when enabled) the secret pass.
func (s *Scanner) Scan(content, language, path string) []issue.Issue {
	if !s.cfg.Enabled {
		return nil
	}

	var issues []issue.Issue
	for _, rule := range s.catalog {
		issues = append(issues, rule.Apply(content, path, issue.KindSecurity, issue.SourceSecurityScanner)...)
	}

	if bundle, ok := s.registry.Bundle(language); ok {
		for _, rule := range bundle.Security {
			issues = append(issues, rule.Apply(content, path, issue.KindSecurity, issue.SourceSecurityScanner)...)
		}
	}

	if s.cfg.CheckSecrets {
		for _, rule := range s.secrets {
			issues = append(issues, rule.Apply(content, path, issue.KindSecurity, issue.SourceSecurityScanner)...)
		}
	}

	if len(issues) > 0 {
		s.log.Debug("security findings", zap.String("path", path), zap.Int("count", len(issues)))
	}
	return issues
}
