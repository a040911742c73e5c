package types

// InvestigationStatus represents the lifecycle status of an investigation
type InvestigationStatus string

const (
	InvestigationStatusQueued    InvestigationStatus = "queued"
	InvestigationStatusAnalyzing InvestigationStatus = "analyzing"
	InvestigationStatusCompleted InvestigationStatus = "completed"
	InvestigationStatusFailed    InvestigationStatus = "failed"
)

// String returns the string representation of the status
func (s InvestigationStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s InvestigationStatus) IsValid() bool {
	switch s {
	case InvestigationStatusQueued, InvestigationStatusAnalyzing, InvestigationStatusCompleted, InvestigationStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true when the status will not change anymore
func (s InvestigationStatus) IsTerminal() bool {
	return s == InvestigationStatusCompleted || s == InvestigationStatusFailed
}

// FilingVerdict represents the filing readiness verdict of a report
type FilingVerdict string

const (
	VerdictSafeToFile      FilingVerdict = "safe_to_file"
	VerdictFileWithCaution FilingVerdict = "file_with_caution"
	VerdictDoNotFile       FilingVerdict = "do_not_file"
)

// String returns the string representation of the verdict
func (v FilingVerdict) String() string {
	return string(v)
}

// IsValid checks if the verdict is valid
func (v FilingVerdict) IsValid() bool {
	switch v {
	case VerdictSafeToFile, VerdictFileWithCaution, VerdictDoNotFile:
		return true
	default:
		return false
	}
}
