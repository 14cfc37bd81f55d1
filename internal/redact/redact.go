// Package redact strips secrets from file content before it is submitted to
// a model backend.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private key blocks, AWS credentials, bearer tokens, and well-known
// provider token prefixes (OpenAI, GitHub, Slack). Files whose paths match a
// configured glob have their entire content replaced rather than scanned.
package redact

import (
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

var secretShapes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// Secrets replaces every detected secret in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretShapes {
		result = pat.ReplaceAllLiteralString(result, placeholder)
	}
	return result
}

// ShouldRedactPath reports whether path matches any redaction glob. A
// "**/" prefix also matches against the bare filename, so "**/.env" covers
// both ".env" and "config/.env".
func ShouldRedactPath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, path); err == nil && matched {
			return true
		}
		if basePattern := strings.TrimPrefix(pattern, "**/"); basePattern != pattern {
			if matched, err := filepath.Match(basePattern, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Content prepares file content for outbound submission: path-policy matches
// drop the whole body, everything else gets the secret scan.
func Content(content, path string, redactPaths []string) string {
	if ShouldRedactPath(path, redactPaths) {
		return placeholder + " (file content redacted by path policy)\n"
	}
	return Secrets(content)
}
