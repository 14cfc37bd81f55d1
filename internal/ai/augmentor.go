// Package ai layers model-generated findings on top of the static passes.
// The augmentor is strictly best-effort: any backend failure logs a warning
// and yields no issues, never an error.
package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"reviewd/internal/cache"
	"reviewd/internal/config"
	"reviewd/internal/issue"
	"reviewd/internal/logging"
	"reviewd/internal/providers"
	"reviewd/internal/redact"
)

const fallbackMessageLimit = 200

// Augmentor asks a model backend for additional findings on one file.
type Augmentor struct {
	cfg       config.AIConfig
	completer providers.Completer
	store     *cache.Cache
	log       *zap.Logger
}

// New builds an augmentor. completer may be nil when AI review is disabled;
// store may be nil to skip caching.
func New(cfg config.AIConfig, completer providers.Completer, store *cache.Cache, log *zap.Logger) *Augmentor {
	return &Augmentor{
		cfg:       cfg,
		completer: completer,
		store:     store,
		log:       logging.OrNop(log),
	}
}

// Enabled reports whether the augmentor will produce anything.
func (a *Augmentor) Enabled() bool {
	return a.cfg.Enabled && a.completer != nil
}

// Quality returns model findings about code quality in content.
func (a *Augmentor) Quality(ctx context.Context, content, language, path string) []issue.Issue {
	system, user := qualityPrompt(language, path, a.outbound(content, path))
	return a.review(ctx, system, user, path, issue.KindQuality)
}

// Security returns model findings about vulnerabilities in content.
func (a *Augmentor) Security(ctx context.Context, content, language, path string) []issue.Issue {
	system, user := securityPrompt(language, path, a.outbound(content, path))
	return a.review(ctx, system, user, path, issue.KindSecurity)
}

// outbound prepares file content for submission: truncate to the configured
// ceiling, then redact when the config demands it.
func (a *Augmentor) outbound(content, path string) string {
	if max := a.cfg.MaxContentChars; max > 0 && len(content) > max {
		content = content[:max]
	}
	if a.cfg.RedactSecrets {
		content = redact.Content(content, path, nil)
	}
	return content
}

func (a *Augmentor) review(ctx context.Context, system, user, path string, kind issue.Kind) []issue.Issue {
	if !a.Enabled() {
		return nil
	}

	key := cache.Key(a.completer.Name(), a.cfg.Model, user)
	if a.store != nil {
		if cached, ok := a.store.Get(key); ok {
			return a.parse(cached, path, kind)
		}
	}

	if a.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(a.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	resp, err := a.completer.Complete(ctx, providers.CompletionRequest{
		SystemPrompt: system,
		UserPrompt:   user,
	})
	if err != nil {
		a.log.Warn("model review skipped",
			zap.String("path", path),
			zap.String("provider", a.completer.Name()),
			zap.Error(err))
		return nil
	}

	if a.store != nil {
		if err := a.store.Put(key, resp.Content); err != nil {
			a.log.Warn("cache write failed", zap.Error(err))
		}
	}

	return a.parse(resp.Content, path, kind)
}

type aiIssue struct {
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Description string `json:"description"`
	Line        int    `json:"line"`
}

type aiPayload struct {
	Issues []aiIssue `json:"issues"`
}

// parse maps a model response to issues. Structured responses carry an
// "issues" array; anything else becomes a single medium-severity note built
// from the leading text.
func (a *Augmentor) parse(response, path string, kind issue.Kind) []issue.Issue {
	body := stripFences(strings.TrimSpace(response))
	if body == "" {
		return nil
	}

	if strings.HasPrefix(body, "{") {
		var payload aiPayload
		if err := json.Unmarshal([]byte(body), &payload); err != nil {
			a.log.Warn("unparseable model response", zap.String("path", path), zap.Error(err))
			return nil
		}
		var issues []issue.Issue
		for _, raw := range payload.Issues {
			msg := raw.Message
			if msg == "" {
				msg = raw.Description
			}
			if msg == "" {
				continue
			}
			issues = append(issues, issue.Issue{
				Kind:     kind,
				Severity: issue.NormalizeSeverity(raw.Severity),
				Message:  msg,
				Line:     raw.Line,
				FilePath: path,
				Source:   issue.SourceAI,
			})
		}
		return issues
	}

	return []issue.Issue{{
		Kind:     kind,
		Severity: issue.SeverityMedium,
		Message:  truncate(body, fallbackMessageLimit),
		FilePath: path,
		Source:   issue.SourceAI,
	}}
}

// stripFences unwraps a Markdown code fence around the whole response.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
