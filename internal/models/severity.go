package models

type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsIssue reports whether the severity should surface as a performance issue.
func (s Severity) IsIssue() bool {
	return s != SeverityNone && s != ""
}
