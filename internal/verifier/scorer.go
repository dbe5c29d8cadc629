package verifier

import (
	"github.com/scan-io-git/wmverify/internal/debugger"
	"github.com/scan-io-git/wmverify/internal/watermark"
)

// Score records the outcome of one descriptor in the report. sessionErr is the
// driver failure, if any; ext is ignored when it is set.
func Score(r *Report, desc watermark.Descriptor, ext debugger.Extraction, sessionErr error) Record {
	rec := Record{Descriptor: desc, Observed: ext.Raw}
	r.Processed++

	switch {
	case sessionErr != nil:
		rec.Outcome = OutcomeWrong
		rec.Observed = ""
		rec.Error = sessionErr.Error()
	case ext.Kind == debugger.KindUnavailable:
		rec.Outcome = OutcomeUnavailable
		r.Unavailable++
	case ext.Kind == debugger.KindValue && ext.Value == desc.Expected:
		rec.Outcome = OutcomeCorrect
		r.Matched++
	case ext.Kind == debugger.KindValue:
		rec.Outcome = OutcomeWrong
	default:
		rec.Outcome = OutcomeWrong
		if ext.Err != nil {
			rec.Error = ext.Err.Error()
		}
	}

	r.Records = append(r.Records, rec)
	return rec
}
