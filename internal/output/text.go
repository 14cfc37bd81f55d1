package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"reviewd/internal/issue"
	"reviewd/internal/review"
)

// TextWriter renders a human-readable report: a summary table followed by a
// per-file issue listing grouped in discovery order.
type TextWriter struct{}

var (
	heading = color.New(color.FgHiWhite, color.Bold).SprintFunc()
	red     = color.New(color.FgHiRed).SprintFunc()
	yellow  = color.New(color.FgHiYellow).SprintFunc()
	cyan    = color.New(color.FgHiCyan).SprintFunc()
	green   = color.New(color.FgHiGreen).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

func severityLabel(sev issue.Severity) string {
	switch sev {
	case issue.SeverityHigh:
		return red(string(sev))
	case issue.SeverityMedium:
		return yellow(string(sev))
	default:
		return cyan(string(sev))
	}
}

func (t *TextWriter) Write(w io.Writer, session *review.Session) error {
	ew := &errWriter{w: w}

	ew.printf("%s\n", heading("Code Review Results"))
	ew.printf("Path: %s\n", session.Path)
	ew.printf("Time: %s\n", session.Timestamp.Format("2006-01-02 15:04:05 MST"))
	ew.println(strings.Repeat("─", 60))

	t.writeSummary(ew, session)

	if session.IssuesFound == 0 {
		hasErrors := false
		for _, f := range session.Files {
			if f.Error != "" {
				hasErrors = true
			}
		}
		if !hasErrors {
			ew.printf("\n%s\n", green("No issues found. Looks good!"))
			return ew.err
		}
	}

	for _, f := range session.Files {
		if len(f.Issues) == 0 && f.Error == "" {
			continue
		}
		ew.printf("\n%s %s\n", heading(f.FilePath), dim(fmt.Sprintf("(%s, %d lines)", f.Language, f.Lines)))
		if f.Error != "" {
			ew.printf("  %s %s\n", red("ERROR:"), f.Error)
			continue
		}
		for _, iss := range f.Issues {
			loc := ""
			if iss.Line > 0 {
				loc = fmt.Sprintf(":%d", iss.Line)
			}
			ew.printf("  [%s] %s%s %s", severityLabel(iss.Severity), iss.Kind, loc, iss.Message)
			if iss.WeaknessID != "" {
				ew.printf(" %s", dim("("+iss.WeaknessID+")"))
			}
			ew.printf(" %s\n", dim("["+string(iss.Source)+"]"))
		}
	}

	return ew.err
}

// writeSummary renders the aggregate counts as a compact table.
func (t *TextWriter) writeSummary(ew *errWriter, session *review.Session) {
	if ew.err != nil {
		return
	}
	table := tablewriter.NewTable(ew.w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header([]string{"Files", "Issues", "Security", "Quality", "Performance", "High", "Medium", "Low"})
	s := session.Summary
	table.Append([]string{
		strconv.Itoa(s.TotalFiles),
		strconv.Itoa(s.TotalIssues),
		strconv.Itoa(s.SecurityIssues),
		strconv.Itoa(s.QualityIssues),
		strconv.Itoa(s.PerformanceIssues),
		strconv.Itoa(s.SeverityBreakdown.High),
		strconv.Itoa(s.SeverityBreakdown.Medium),
		strconv.Itoa(s.SeverityBreakdown.Low),
	})
	ew.err = table.Render()
}

// errWriter captures the first write error so the happy path stays flat.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
