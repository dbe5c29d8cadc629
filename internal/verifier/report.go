package verifier

import (
	"fmt"
	"time"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/watermark"
)

// Outcome is the result of checking one descriptor.
type Outcome string

const (
	OutcomeCorrect     Outcome = "CORRECT"
	OutcomeWrong       Outcome = "WRONG"
	OutcomeUnavailable Outcome = "UNAVAILABLE"
	OutcomeSkipped     Outcome = "SKIPPED"
)

// Verdict is the final result of a run.
type Verdict string

const (
	VerdictSuccess Verdict = "SUCCESS"
	VerdictFailure Verdict = "FAILURE"
)

// Record is the scored result of one descriptor.
type Record struct {
	Descriptor watermark.Descriptor `json:"descriptor"`
	Outcome    Outcome              `json:"outcome"`
	Observed   string               `json:"observed,omitempty"`
	Error      string               `json:"error,omitempty"`
	SessionID  string               `json:"session_id,omitempty"`
	Duration   time.Duration        `json:"duration"`
}

// Report accumulates the records of a run.
type Report struct {
	Loaded      int      `json:"loaded"`
	Processed   int      `json:"processed"`
	Matched     int      `json:"matched"`
	Unavailable int      `json:"unavailable"`
	Total       int      `json:"total"`
	TotalPolicy string   `json:"total_policy"`
	Skipped     bool     `json:"skipped"`
	Interrupted bool     `json:"interrupted"`
	Verdict     Verdict  `json:"verdict"`
	Records     []Record `json:"records"`
}

// NewReport creates a report for a run over loaded descriptors.
func NewReport(loaded int, totalPolicy string) *Report {
	return &Report{Loaded: loaded, TotalPolicy: totalPolicy}
}

// Finalize computes the total and the verdict. Unavailable descriptors are left
// out of the total so they cannot fail a run on their own. An interrupted run,
// or a skipped run that checked nothing, is a failure whatever the ratio says.
func (r *Report) Finalize() {
	base := r.Processed
	if r.TotalPolicy == config.TotalPolicyLoaded {
		base = r.Loaded
	}
	r.Total = base - r.Unavailable

	r.Verdict = VerdictFailure
	switch {
	case r.Interrupted:
	case r.Skipped && r.Processed == 0:
	case r.Matched == r.Total:
		r.Verdict = VerdictSuccess
	}
}

// Ratio renders "matched/total".
func (r *Report) Ratio() string {
	return fmt.Sprintf("%d/%d", r.Matched, r.Total)
}

// Succeeded reports whether the finalized run is a success.
func (r *Report) Succeeded() bool {
	return r.Verdict == VerdictSuccess
}
