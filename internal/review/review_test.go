package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewd/internal/ai"
	"reviewd/internal/config"
	"reviewd/internal/issue"
	"reviewd/internal/providers"
	"reviewd/internal/rules"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Workers = 2
	return &cfg
}

func newTestOrchestrator(cfg *config.Config) *Orchestrator {
	return NewOrchestrator(cfg, rules.Default(), nil, nil)
}

func TestRunSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.py", "import pickle\npickle.loads(data)\n")

	session, err := newTestOrchestrator(testConfig()).Run(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, 1, session.FilesReviewed)
	assert.Equal(t, path, session.Files[0].FilePath)
	assert.Equal(t, "python", session.Files[0].Language)
	assert.Equal(t, 3, session.Files[0].Lines)
	assert.NotEmpty(t, session.Files[0].Issues)
}

func TestRunDirectoryOrderIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.py", "x = 1\n")
	writeFile(t, dir, "a.py", "x = 1\n")
	writeFile(t, dir, "b/nested.py", "x = 1\n")

	o := newTestOrchestrator(testConfig())
	var previous []string
	for run := 0; run < 3; run++ {
		session, err := o.Run(context.Background(), dir)
		require.NoError(t, err)
		var got []string
		for _, f := range session.Files {
			got = append(got, filepath.Base(f.FilePath))
		}
		require.Equal(t, []string{"a.py", "nested.py", "c.py"}, got)
		if previous != nil {
			assert.Equal(t, previous, got)
		}
		previous = got
	}
}

func TestRunSessionInvariants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.py", "password = \"hunter2secret\"\ntry:\n    go()\nexcept:\n    pass\n")
	writeFile(t, dir, "slow.py", "for i in range(len(items)):\n    use(items[i])\n")
	writeFile(t, dir, "fine.py", "VALUE = 1\n")

	session, err := newTestOrchestrator(testConfig()).Run(context.Background(), dir)
	require.NoError(t, err)

	total := 0
	for _, f := range session.Files {
		total += len(f.Issues)
	}
	assert.Equal(t, total, session.IssuesFound)
	assert.Equal(t, session.IssuesFound,
		session.SecurityIssues+session.QualityIssues+session.PerformanceIssues)

	b := session.Summary.SeverityBreakdown
	assert.Equal(t, session.IssuesFound, b.High+b.Medium+b.Low)
	assert.Equal(t, session.FilesReviewed, session.Summary.TotalFiles)
	assert.Equal(t, session.IssuesFound, session.Summary.TotalIssues)
	assert.Positive(t, session.PerformanceIssues)
	assert.Positive(t, session.SecurityIssues)
}

func TestRunIsolatesUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 9; i++ {
		writeFile(t, dir, fmt.Sprintf("ok%d.py", i), "x = 1\n")
	}
	binary := filepath.Join(dir, "mangled.py")
	require.NoError(t, os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, 0x80, 0x81}, 0o644))

	session, err := newTestOrchestrator(testConfig()).Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 10, session.FilesReviewed)
	withError := 0
	for _, f := range session.Files {
		if f.Error != "" {
			withError++
			assert.Empty(t, f.Issues)
			assert.Equal(t, binary, f.FilePath)
		}
	}
	assert.Equal(t, 1, withError)
}

func TestRunExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "code.py", "x = 1\n")
	writeFile(t, dir, "notes.txt", "not code\n")
	writeFile(t, dir, "data.csv", "a,b\n")

	session, err := newTestOrchestrator(testConfig()).Run(context.Background(), dir)
	require.NoError(t, err)

	require.Equal(t, 1, session.FilesReviewed)
	assert.Equal(t, "code.py", filepath.Base(session.Files[0].FilePath))
}

func TestRunExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.py", "x = 1\n")
	writeFile(t, dir, "node_modules/dep.js", "var x = 1\n")
	writeFile(t, dir, "vendor/lib.go", "package lib\n")

	session, err := newTestOrchestrator(testConfig()).Run(context.Background(), dir)
	require.NoError(t, err)

	require.Equal(t, 1, session.FilesReviewed)
	assert.Equal(t, "keep.py", filepath.Base(session.Files[0].FilePath))
}

func TestRunFatalOnMissingRoot(t *testing.T) {
	_, err := newTestOrchestrator(testConfig()).Run(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestRunWithoutAugmentorHasNoAISource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "eval(user_input)\n")

	session, err := newTestOrchestrator(testConfig()).Run(context.Background(), dir)
	require.NoError(t, err)

	for _, f := range session.Files {
		for _, iss := range f.Issues {
			assert.NotEqual(t, issue.SourceAI, iss.Source)
		}
	}
}

type stubCompleter struct{ response string }

func (s *stubCompleter) Complete(context.Context, providers.CompletionRequest) (providers.CompletionResponse, error) {
	return providers.CompletionResponse{Content: s.response}, nil
}
func (s *stubCompleter) Name() string { return "stub" }

func TestRunMergeOrder(t *testing.T) {
	dir := t.TempDir()
	// One quality match (bare except), one security match (eval), one
	// performance match (range(len)).
	writeFile(t, dir, "mix.py", "try:\n    eval(x)\nexcept:\n    pass\nfor i in range(len(xs)):\n    use(xs[i])\n")

	cfg := testConfig()
	cfg.AI.Enabled = true
	augmentor := ai.New(cfg.AI, &stubCompleter{response: `{"issues": [{"severity": "LOW", "message": "model note"}]}`}, nil, nil)

	session, err := NewOrchestrator(cfg, rules.Default(), augmentor, nil).Run(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, 1, session.FilesReviewed)

	var order []string
	for _, iss := range session.Files[0].Issues {
		order = append(order, string(iss.Kind)+"/"+string(iss.Source))
	}

	// Merge order per file: quality static, quality AI, security static,
	// security AI, performance.
	positions := map[string]int{}
	for i, key := range order {
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}
	assert.Less(t, positions["quality/static_analysis"], positions["quality/ai"])
	assert.Less(t, positions["quality/ai"], positions["security/security_scanner"])
	assert.Less(t, positions["security/security_scanner"], positions["security/ai"])
	assert.Less(t, positions["security/ai"], positions["performance/static_analysis"])
}

func TestRunCanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session, err := newTestOrchestrator(testConfig()).Run(ctx, dir)
	require.NoError(t, err)
	assert.Zero(t, session.FilesReviewed)
	assert.NotNil(t, session.Files)
}

func TestSelectorSingleFile(t *testing.T) {
	dir := t.TempDir()
	py := writeFile(t, dir, "one.py", "x = 1\n")
	txt := writeFile(t, dir, "one.txt", "words\n")

	s := NewSelector([]string{".py"}, nil, nil)

	paths, err := s.Select(py)
	require.NoError(t, err)
	assert.Equal(t, []string{py}, paths)

	paths, err = s.Select(txt)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSelectorExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "x = 1\n")
	writeFile(t, dir, "app_test.py", "x = 1\n")

	s := NewSelector([]string{".py"}, []string{"*_test.py"}, nil)
	paths, err := s.Select(dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "app.py", filepath.Base(paths[0]))
}

func TestSessionMaxSeverity(t *testing.T) {
	s := &Session{Files: []FileResult{{
		Issues: []issue.Issue{
			{Severity: issue.SeverityLow},
			{Severity: issue.SeverityHigh},
			{Severity: issue.SeverityMedium},
		},
	}}}
	sev, ok := s.MaxSeverity()
	require.True(t, ok)
	assert.Equal(t, issue.SeverityHigh, sev)

	empty := &Session{}
	_, ok = empty.MaxSeverity()
	assert.False(t, ok)
}
