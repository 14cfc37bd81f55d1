package review

import (
	"time"

	"reviewd/internal/issue"
)

// FileResult holds everything the pipeline produced for one file. Error is
// set (and Issues empty) when the file could not be read or decoded; a
// single file's failure never aborts the run.
type FileResult struct {
	FilePath string        `json:"file_path"`
	Language string        `json:"language"`
	Size     int64         `json:"size"`
	Lines    int           `json:"lines"`
	Issues   []issue.Issue `json:"issues"`
	Error    string        `json:"error,omitempty"`
}

// Breakdown counts issues per severity. The uppercase keys are part of the
// output contract.
type Breakdown struct {
	High   int `json:"HIGH"`
	Medium int `json:"MEDIUM"`
	Low    int `json:"LOW"`
}

// Summary aggregates counts over a whole session.
type Summary struct {
	TotalFiles        int       `json:"total_files"`
	TotalIssues       int       `json:"total_issues"`
	SecurityIssues    int       `json:"security_issues"`
	QualityIssues     int       `json:"quality_issues"`
	PerformanceIssues int       `json:"performance_issues"`
	SeverityBreakdown Breakdown `json:"severity_breakdown"`
}

// Session is the result of one review run. Files preserves discovery order.
// The JSON field names are a compatibility contract for downstream
// consumers and must not change.
type Session struct {
	RunID             string       `json:"-"`
	Timestamp         time.Time    `json:"timestamp"`
	Path              string       `json:"path"`
	FilesReviewed     int          `json:"files_reviewed"`
	IssuesFound       int          `json:"issues_found"`
	SecurityIssues    int          `json:"security_issues"`
	QualityIssues     int          `json:"quality_issues"`
	PerformanceIssues int          `json:"performance_issues"`
	Files             []FileResult `json:"files"`
	Summary           Summary      `json:"summary"`
}

// Finalize recomputes every aggregate field from Files. Called once by the
// orchestrator after the per-file loop; safe to call again after mutation.
func (s *Session) Finalize() {
	s.FilesReviewed = len(s.Files)
	s.IssuesFound = 0
	s.SecurityIssues = 0
	s.QualityIssues = 0
	s.PerformanceIssues = 0
	breakdown := Breakdown{}

	for _, f := range s.Files {
		s.IssuesFound += len(f.Issues)
		for _, iss := range f.Issues {
			switch iss.Kind {
			case issue.KindSecurity:
				s.SecurityIssues++
			case issue.KindQuality:
				s.QualityIssues++
			case issue.KindPerformance:
				s.PerformanceIssues++
			}
			switch iss.Severity {
			case issue.SeverityHigh:
				breakdown.High++
			case issue.SeverityMedium:
				breakdown.Medium++
			case issue.SeverityLow:
				breakdown.Low++
			}
		}
	}

	s.Summary = Summary{
		TotalFiles:        s.FilesReviewed,
		TotalIssues:       s.IssuesFound,
		SecurityIssues:    s.SecurityIssues,
		QualityIssues:     s.QualityIssues,
		PerformanceIssues: s.PerformanceIssues,
		SeverityBreakdown: breakdown,
	}
}

// MaxSeverity returns the highest severity present in the session, or false
// when there are no issues.
func (s *Session) MaxSeverity() (issue.Severity, bool) {
	best := issue.Severity("")
	found := false
	for _, f := range s.Files {
		for _, iss := range f.Issues {
			if !found || iss.Severity.Rank() > best.Rank() {
				best = iss.Severity
				found = true
			}
		}
	}
	return best, found
}
