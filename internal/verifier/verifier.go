// Package verifier checks watermark descriptors one by one against fresh debugger
// sessions and scores the observed values.
package verifier

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/debugger"
	"github.com/scan-io-git/wmverify/internal/watermark"
)

// Inspector runs a debugger session for a descriptor and extracts its value.
// *debugger.Driver implements it.
type Inspector interface {
	Inspect(ctx context.Context, desc watermark.Descriptor) (debugger.Session, error)
	Extract(session debugger.Session, variable string) debugger.Extraction
}

// Observer receives outcomes as soon as they are known.
type Observer interface {
	Outcome(rec Record)
	Skipped(desc watermark.Descriptor, limit int)
	Summary(r *Report)
}

// Verifier runs descriptors sequentially.
type Verifier struct {
	inspector   Inspector
	observer    Observer
	maxHitCount int
	totalPolicy string
	logger      hclog.Logger
}

// New creates a Verifier. maxHitCount of zero disables the skip guard.
func New(inspector Inspector, observer Observer, maxHitCount int, totalPolicy string, logger hclog.Logger) *Verifier {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if totalPolicy == "" {
		totalPolicy = config.TotalPolicyProcessed
	}
	return &Verifier{
		inspector:   inspector,
		observer:    observer,
		maxHitCount: maxHitCount,
		totalPolicy: totalPolicy,
		logger:      logger,
	}
}

// Run checks every descriptor in order and returns the finalized report. The run
// stops at the first descriptor whose hit count exceeds the ceiling. When ctx is
// cancelled the partial report is returned together with ctx.Err().
func (v *Verifier) Run(ctx context.Context, descriptors []watermark.Descriptor) (*Report, error) {
	report := NewReport(len(descriptors), v.totalPolicy)
	v.logger.Info("verification starting", "descriptors", len(descriptors), "max_hit_count", v.maxHitCount, "total_policy", v.totalPolicy)

	var runErr error
	for _, desc := range descriptors {
		if err := ctx.Err(); err != nil {
			report.Interrupted = true
			runErr = err
			v.logger.Warn("verification interrupted", "processed", report.Processed, "error", err)
			break
		}

		if v.maxHitCount > 0 && desc.HitCount > v.maxHitCount {
			report.Skipped = true
			report.Records = append(report.Records, Record{Descriptor: desc, Outcome: OutcomeSkipped})
			v.logger.Warn("hit count exceeds ceiling, skipping the rest of the run", "index", desc.Index, "hits", desc.HitCount, "limit", v.maxHitCount)
			v.notifySkipped(desc)
			break
		}

		rec := v.check(ctx, report, desc)
		v.notifyOutcome(rec)
	}

	report.Finalize()
	v.logger.Info("verification finished", "verdict", report.Verdict, "matched", report.Matched, "total", report.Total, "processed", report.Processed)
	if v.observer != nil {
		v.observer.Summary(report)
	}
	return report, runErr
}

func (v *Verifier) check(ctx context.Context, report *Report, desc watermark.Descriptor) Record {
	logger := v.logger.With("index", desc.Index, "location", desc.Location(), "variable", desc.Variable)

	session, err := v.inspector.Inspect(ctx, desc)
	if err != nil {
		logger.Error("debugger session failed", "error", err)
		rec := Score(report, desc, debugger.Extraction{}, err)
		return v.withSession(report, rec, session)
	}

	ext := v.inspector.Extract(session, desc.Variable)
	switch ext.Kind {
	case debugger.KindParseError:
		logger.Warn("failed to extract value", "error", ext.Err, "raw", ext.Raw)
	case debugger.KindUnavailable:
		logger.Info("variable not available, not counted", "raw", ext.Raw)
	default:
		logger.Debug("value extracted", "value", ext.Value, "expected", desc.Expected)
	}

	rec := Score(report, desc, ext, nil)
	return v.withSession(report, rec, session)
}

// withSession stamps session details on the last record.
func (v *Verifier) withSession(report *Report, rec Record, session debugger.Session) Record {
	rec.SessionID = session.ID
	rec.Duration = session.Duration
	report.Records[len(report.Records)-1] = rec
	return rec
}

func (v *Verifier) notifyOutcome(rec Record) {
	if v.observer != nil {
		v.observer.Outcome(rec)
	}
}

func (v *Verifier) notifySkipped(desc watermark.Descriptor) {
	if v.observer != nil {
		v.observer.Skipped(desc, v.maxHitCount)
	}
}
