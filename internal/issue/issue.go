package issue

// Severity is the fixed severity vocabulary. The uppercase spellings are a
// compatibility contract for report consumers and must not change.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Rank returns a numeric rank for sorting and threshold checks (higher = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// NormalizeSeverity maps free-form severity strings (e.g. from a model
// response) onto the fixed vocabulary. Unknown values become MEDIUM.
func NormalizeSeverity(s string) Severity {
	switch Severity(toUpper(s)) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityLow:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// MeetsThreshold reports whether s is at or above the named threshold.
// An empty or "none" threshold never matches.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	return s.Rank() >= NormalizeSeverity(threshold).Rank()
}

// Kind classifies what aspect of the code an issue concerns.
type Kind string

const (
	KindQuality     Kind = "quality"
	KindSecurity    Kind = "security"
	KindPerformance Kind = "performance"
)

// Source identifies which engine produced an issue.
type Source string

const (
	SourceStatic          Source = "static_analysis"
	SourceSecurityScanner Source = "security_scanner"
	SourceAI              Source = "ai"
)

// Issue is a single detected problem. Values are immutable once created;
// each Issue is owned by the file result that holds it.
type Issue struct {
	Kind       Kind     `json:"type"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Line       int      `json:"line,omitempty"`
	Column     int      `json:"column,omitempty"`
	FilePath   string   `json:"file_path"`
	Source     Source   `json:"source"`
	WeaknessID string   `json:"weakness_id,omitempty"`
}
