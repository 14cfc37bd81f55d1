package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewd/internal/issue"
	"reviewd/internal/review"
)

func sampleSession() *review.Session {
	s := &review.Session{
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Path:      "src",
		Files: []review.FileResult{
			{
				FilePath: "src/app.py",
				Language: "python",
				Size:     120,
				Lines:    8,
				Issues: []issue.Issue{
					{
						Kind:       issue.KindSecurity,
						Severity:   issue.SeverityHigh,
						Message:    "Hardcoded password detected",
						Line:       3,
						FilePath:   "src/app.py",
						Source:     issue.SourceSecurityScanner,
						WeaknessID: "CWE-798",
					},
					{
						Kind:     issue.KindQuality,
						Severity: issue.SeverityLow,
						Message:  "Line 5 has trailing whitespace.",
						Line:     5,
						FilePath: "src/app.py",
						Source:   issue.SourceStatic,
					},
				},
			},
			{
				FilePath: "src/data.py",
				Language: "python",
				Issues:   []issue.Issue{},
				Error:    "file content is not valid UTF-8",
			},
		},
	}
	s.Finalize()
	return s
}

func TestJSONWriterContract(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(&buf, sampleSession()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	for _, key := range []string{
		"timestamp", "path", "files_reviewed", "issues_found",
		"security_issues", "quality_issues", "performance_issues",
		"files", "summary",
	} {
		assert.Contains(t, doc, key)
	}

	files := doc["files"].([]any)
	require.Len(t, files, 2)
	first := files[0].(map[string]any)
	for _, key := range []string{"file_path", "language", "size", "lines", "issues"} {
		assert.Contains(t, first, key)
	}
	assert.NotContains(t, first, "error", "error must be omitted when empty")

	second := files[1].(map[string]any)
	assert.Equal(t, "file content is not valid UTF-8", second["error"])
	assert.Equal(t, []any{}, second["issues"], "issues must serialize as an empty array, not null")

	iss := first["issues"].([]any)[0].(map[string]any)
	assert.Equal(t, "security", iss["type"])
	assert.Equal(t, "HIGH", iss["severity"])
	assert.Equal(t, "security_scanner", iss["source"])
	assert.Equal(t, "CWE-798", iss["weakness_id"])
	assert.Equal(t, float64(3), iss["line"])

	summary := doc["summary"].(map[string]any)
	for _, key := range []string{
		"total_files", "total_issues", "security_issues",
		"quality_issues", "performance_issues", "severity_breakdown",
	} {
		assert.Contains(t, summary, key)
	}
	breakdown := summary["severity_breakdown"].(map[string]any)
	assert.Equal(t, float64(1), breakdown["HIGH"])
	assert.Equal(t, float64(0), breakdown["MEDIUM"])
	assert.Equal(t, float64(1), breakdown["LOW"])
}

func TestTextWriter(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, sampleSession()))
	out := buf.String()

	assert.Contains(t, out, "Code Review Results")
	assert.Contains(t, out, "src/app.py")
	assert.Contains(t, out, "Hardcoded password detected")
	assert.Contains(t, out, "CWE-798")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "ERROR:")
}

func TestTextWriterCleanRun(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	s := &review.Session{
		Timestamp: time.Now().UTC(),
		Path:      "src",
		Files: []review.FileResult{
			{FilePath: "src/ok.py", Language: "python", Lines: 1, Issues: []issue.Issue{}},
		},
	}
	s.Finalize()

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, s))
	assert.Contains(t, buf.String(), "No issues found")
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		w, err := GetWriter(format)
		require.NoError(t, err)
		assert.NotNil(t, w)
	}
	_, err := GetWriter("yaml")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported"))
}
