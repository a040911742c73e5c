package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/kord-legal/kord/pkg/domain/types"
)

// CriticalIssue represents a quote whose cited authority does not support it,
// or does not exist at all
type CriticalIssue struct {
	Quote    string `json:"quote" yaml:"quote" firestore:"quote"`
	Citation string `json:"citation" yaml:"citation" firestore:"citation"`
	Problem  string `json:"problem" yaml:"problem" firestore:"problem"`
	Severity string `json:"severity" yaml:"severity" firestore:"severity"`
}

// Validate validates the critical issue
func (i *CriticalIssue) Validate() error {
	if i.Quote == "" {
		return goerr.New("critical issue quote is required")
	}
	if i.Citation == "" {
		return goerr.New("critical issue citation is required")
	}
	if i.Problem == "" {
		return goerr.New("critical issue problem is required")
	}
	return nil
}

// HallucinationSignal represents a characteristic pattern of AI-generated
// legal text found in the brief
type HallucinationSignal struct {
	Pattern     string  `json:"pattern" yaml:"pattern" firestore:"pattern"`
	Excerpt     string  `json:"excerpt" yaml:"excerpt" firestore:"excerpt"`
	Explanation string  `json:"explanation" yaml:"explanation" firestore:"explanation"`
	Confidence  float64 `json:"confidence" yaml:"confidence" firestore:"confidence"`
}

// Validate validates the hallucination signal
func (s *HallucinationSignal) Validate() error {
	if s.Pattern == "" {
		return goerr.New("hallucination signal pattern is required")
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return goerr.New("hallucination signal confidence must be between 0 and 1",
			goerr.V("confidence", s.Confidence))
	}
	return nil
}

// FormattingIssue represents a citation-form problem (Bluebook style)
type FormattingIssue struct {
	Location   string `json:"location" yaml:"location" firestore:"location"`
	Rule       string `json:"rule" yaml:"rule" firestore:"rule"`
	Suggestion string `json:"suggestion" yaml:"suggestion" firestore:"suggestion"`
}

// Validate validates the formatting issue
func (f *FormattingIssue) Validate() error {
	if f.Location == "" {
		return goerr.New("formatting issue location is required")
	}
	if f.Rule == "" {
		return goerr.New("formatting issue rule is required")
	}
	return nil
}

// Report represents the result of an investigation
type Report struct {
	Summary              string                `json:"summary" yaml:"summary" firestore:"summary"`
	Verdict              types.FilingVerdict   `json:"verdict" yaml:"verdict" firestore:"verdict"`
	CriticalIssues       []CriticalIssue       `json:"critical_issues" yaml:"critical_issues" firestore:"critical_issues"`
	HallucinationSignals []HallucinationSignal `json:"hallucination_signals" yaml:"hallucination_signals" firestore:"hallucination_signals"`
	FormattingIssues     []FormattingIssue     `json:"formatting_issues" yaml:"formatting_issues" firestore:"formatting_issues"`
}

// IssueCount returns the total number of issues across all sections
func (r *Report) IssueCount() int {
	return len(r.CriticalIssues) + len(r.HallucinationSignals) + len(r.FormattingIssues)
}

// Validate validates the report
func (r *Report) Validate() error {
	if r.Summary == "" {
		return goerr.New("report summary is required")
	}
	if !r.Verdict.IsValid() {
		return goerr.New("invalid filing verdict", goerr.V("verdict", r.Verdict))
	}
	if r.IssueCount() == 0 {
		return goerr.New("report must contain at least one issue")
	}
	for i := range r.CriticalIssues {
		if err := r.CriticalIssues[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid critical issue", goerr.V("index", i))
		}
	}
	for i := range r.HallucinationSignals {
		if err := r.HallucinationSignals[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid hallucination signal", goerr.V("index", i))
		}
	}
	for i := range r.FormattingIssues {
		if err := r.FormattingIssues[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid formatting issue", goerr.V("index", i))
		}
	}
	return nil
}

// InvestigationStep represents one stage of the staged investigation run
type InvestigationStep struct {
	Label    string        `json:"label" yaml:"label" firestore:"label"`
	Duration time.Duration `json:"duration" yaml:"duration" firestore:"duration"`
}

// Validate validates the investigation step
func (s *InvestigationStep) Validate() error {
	if s.Label == "" {
		return goerr.New("investigation step label is required")
	}
	if s.Duration <= 0 {
		return goerr.New("investigation step duration must be positive",
			goerr.V("label", s.Label),
			goerr.V("duration", s.Duration))
	}
	return nil
}
