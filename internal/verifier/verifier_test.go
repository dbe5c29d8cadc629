package verifier

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/debugger"
	"github.com/scan-io-git/wmverify/internal/watermark"
)

// fakeInspector answers with canned lldb output per descriptor index.
type fakeInspector struct {
	outputs  map[int]string
	failures map[int]error
	calls    []int
	cancel   context.CancelFunc
}

func (f *fakeInspector) Inspect(ctx context.Context, desc watermark.Descriptor) (debugger.Session, error) {
	f.calls = append(f.calls, desc.Index)
	if f.cancel != nil {
		f.cancel()
	}
	session := debugger.Session{ID: fmt.Sprintf("session-%d", desc.Index)}
	if err, ok := f.failures[desc.Index]; ok {
		return session, &debugger.LaunchError{SessionID: session.ID, Stage: "run debugger", Err: err}
	}
	session.Result.Stdout = f.outputs[desc.Index]
	return session, nil
}

func (f *fakeInspector) Extract(session debugger.Session, variable string) debugger.Extraction {
	return debugger.LLDB{}.Extract(session.Result.Stdout, variable)
}

type recordingObserver struct {
	outcomes []Outcome
	skipped  []int
	summary  *Report
}

func (o *recordingObserver) Outcome(rec Record) { o.outcomes = append(o.outcomes, rec.Outcome) }

func (o *recordingObserver) Skipped(desc watermark.Descriptor, limit int) {
	o.skipped = append(o.skipped, desc.Index)
}

func (o *recordingObserver) Summary(r *Report) { o.summary = r }

func desc(index, line, column, hits int, variable string, expected int64) watermark.Descriptor {
	return watermark.Descriptor{Index: index, Line: line, Column: column, HitCount: hits, Variable: variable, Expected: expected}
}

func lldbValue(variable, value string) string {
	return fmt.Sprintf("(lldb) frame variable %s\n(int) %s = %s\n(lldb) exit\n", variable, variable, value)
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []watermark.Descriptor
		outputs     map[int]string
		failures    map[int]error
		policy      string
		outcomes    []Outcome
		matched     int
		total       int
		verdict     Verdict
	}{
		{
			name:        "first hit matches",
			descriptors: []watermark.Descriptor{desc(1, 10, 4, 1, "x", 42)},
			outputs:     map[int]string{1: lldbValue("x", "42")},
			outcomes:    []Outcome{OutcomeCorrect},
			matched: 1, total: 1, verdict: VerdictSuccess,
		},
		{
			name:        "location visited fewer times than hit count",
			descriptors: []watermark.Descriptor{desc(1, 10, 4, 3, "x", 42)},
			outputs:     map[int]string{1: "Process 1 exited with status = 0\n(lldb) frame variable x\nerror: invalid process\n"},
			outcomes:    []Outcome{OutcomeWrong},
			matched: 0, total: 1, verdict: VerdictFailure,
		},
		{
			name:        "unavailable is not counted",
			descriptors: []watermark.Descriptor{desc(1, 5, 1, 1, "y", 7)},
			outputs:     map[int]string{1: lldbValue("y", "<variable not available>")},
			outcomes:    []Outcome{OutcomeUnavailable},
			matched: 0, total: 0, verdict: VerdictSuccess,
		},
		{
			name:        "unavailable next to a correct one",
			descriptors: []watermark.Descriptor{desc(1, 10, 4, 1, "x", 42), desc(2, 5, 1, 1, "y", 7)},
			outputs:     map[int]string{1: lldbValue("x", "42"), 2: lldbValue("y", "<variable not available>")},
			policy:      config.TotalPolicyLoaded,
			outcomes:    []Outcome{OutcomeCorrect, OutcomeUnavailable},
			matched: 1, total: 1, verdict: VerdictSuccess,
		},
		{
			name:        "two correct",
			descriptors: []watermark.Descriptor{desc(1, 10, 4, 1, "x", 42), desc(2, 12, 2, 5, "z", -3)},
			outputs:     map[int]string{1: lldbValue("x", "42"), 2: lldbValue("z", "-3")},
			outcomes:    []Outcome{OutcomeCorrect, OutcomeCorrect},
			matched: 2, total: 2, verdict: VerdictSuccess,
		},
		{
			name:        "value differs",
			descriptors: []watermark.Descriptor{desc(1, 10, 4, 1, "x", 42), desc(2, 12, 2, 1, "z", 5)},
			outputs:     map[int]string{1: lldbValue("x", "41"), 2: lldbValue("z", "5")},
			outcomes:    []Outcome{OutcomeWrong, OutcomeCorrect},
			matched: 1, total: 2, verdict: VerdictFailure,
		},
		{
			name:        "launch failure does not stop the run",
			descriptors: []watermark.Descriptor{desc(1, 10, 4, 1, "x", 42), desc(2, 12, 2, 1, "z", 5)},
			outputs:     map[int]string{2: lldbValue("z", "5")},
			failures:    map[int]error{1: errors.New("no such file")},
			outcomes:    []Outcome{OutcomeWrong, OutcomeCorrect},
			matched: 1, total: 2, verdict: VerdictFailure,
		},
		{
			name:        "empty listing",
			descriptors: nil,
			outcomes:    nil,
			matched: 0, total: 0, verdict: VerdictSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := &fakeInspector{outputs: tt.outputs, failures: tt.failures}
			observer := &recordingObserver{}
			v := New(inspector, observer, config.DefaultMaxHitCount, tt.policy, nil)

			report, err := v.Run(context.Background(), tt.descriptors)
			require.NoError(t, err)

			assert.Equal(t, tt.outcomes, observer.outcomes)
			assert.Equal(t, tt.matched, report.Matched)
			assert.Equal(t, tt.total, report.Total)
			assert.Equal(t, tt.verdict, report.Verdict)
			assert.Equal(t, fmt.Sprintf("%d/%d", tt.matched, tt.total), report.Ratio())
			assert.Same(t, report, observer.summary)
			assert.Equal(t, report.Matched == report.Total, report.Succeeded())
		})
	}
}

func TestRunRecordsSessionDetails(t *testing.T) {
	inspector := &fakeInspector{
		outputs:  map[int]string{2: lldbValue("y", "abc")},
		failures: map[int]error{1: errors.New("boom")},
	}
	v := New(inspector, nil, 0, "", nil)

	report, err := v.Run(context.Background(), []watermark.Descriptor{desc(1, 1, 1, 1, "x", 1), desc(2, 2, 1, 1, "y", 2)})
	require.NoError(t, err)
	require.Len(t, report.Records, 2)

	assert.Equal(t, "session-1", report.Records[0].SessionID)
	assert.Contains(t, report.Records[0].Error, "boom")
	assert.Equal(t, "session-2", report.Records[1].SessionID)
	assert.Equal(t, "abc", report.Records[1].Observed)
	assert.Contains(t, report.Records[1].Error, "not an integer")
}

func TestRunSkipGuard(t *testing.T) {
	descriptors := []watermark.Descriptor{
		desc(1, 10, 4, 1, "x", 42),
		desc(2, 11, 4, 50001, "y", 1),
		desc(3, 12, 4, 1, "z", 3),
	}

	tests := []struct {
		name    string
		policy  string
		total   int
		verdict Verdict
	}{
		{name: "processed policy", policy: config.TotalPolicyProcessed, total: 1, verdict: VerdictSuccess},
		{name: "loaded policy", policy: config.TotalPolicyLoaded, total: 3, verdict: VerdictFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := &fakeInspector{outputs: map[int]string{1: lldbValue("x", "42"), 3: lldbValue("z", "3")}}
			observer := &recordingObserver{}
			v := New(inspector, observer, 50000, tt.policy, nil)

			report, err := v.Run(context.Background(), descriptors)
			require.NoError(t, err)

			assert.Equal(t, []int{1}, inspector.calls, "descriptors after the skip must not be inspected")
			assert.Equal(t, []int{2}, observer.skipped)
			assert.True(t, report.Skipped)
			assert.Equal(t, 1, report.Processed)
			assert.Equal(t, 1, report.Matched)
			assert.Equal(t, tt.total, report.Total)
			assert.Equal(t, tt.verdict, report.Verdict)
			assert.Equal(t, OutcomeSkipped, report.Records[len(report.Records)-1].Outcome)
		})
	}
}

func TestRunSkipGuardOnFirstDescriptor(t *testing.T) {
	inspector := &fakeInspector{}
	v := New(inspector, nil, 50000, config.TotalPolicyProcessed, nil)

	report, err := v.Run(context.Background(), []watermark.Descriptor{desc(1, 1, 1, 50001, "x", 1), desc(2, 2, 1, 1, "y", 2)})
	require.NoError(t, err)
	assert.Empty(t, inspector.calls)
	assert.True(t, report.Skipped)
	assert.Equal(t, "0/0", report.Ratio())
	assert.Equal(t, VerdictFailure, report.Verdict)
}

func TestRunSkipGuardBoundary(t *testing.T) {
	inspector := &fakeInspector{outputs: map[int]string{1: lldbValue("x", "1")}}
	v := New(inspector, nil, 50000, "", nil)

	report, err := v.Run(context.Background(), []watermark.Descriptor{desc(1, 1, 1, 50000, "x", 1)})
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, []int{1}, inspector.calls)
}

func TestRunSkipGuardDisabled(t *testing.T) {
	inspector := &fakeInspector{outputs: map[int]string{1: lldbValue("x", "1")}}
	v := New(inspector, nil, 0, "", nil)

	report, err := v.Run(context.Background(), []watermark.Descriptor{desc(1, 1, 1, 1_000_000, "x", 1)})
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, VerdictSuccess, report.Verdict)
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	inspector := &fakeInspector{outputs: map[int]string{1: lldbValue("x", "1")}, cancel: cancel}
	observer := &recordingObserver{}
	v := New(inspector, observer, 0, "", nil)

	report, err := v.Run(ctx, []watermark.Descriptor{desc(1, 1, 1, 1, "x", 1), desc(2, 2, 1, 1, "y", 2)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, report.Interrupted)
	assert.Equal(t, []int{1}, inspector.calls)
	assert.NotNil(t, observer.summary)
	assert.Equal(t, "1/1", report.Ratio())
	assert.Equal(t, VerdictFailure, report.Verdict, "a partial run must not read as a success")
	assert.Equal(t, []Outcome{OutcomeCorrect}, observer.outcomes)
}

func TestScore(t *testing.T) {
	d := desc(1, 10, 4, 1, "x", 42)

	tests := []struct {
		name    string
		ext     debugger.Extraction
		err     error
		outcome Outcome
		matched int
	}{
		{name: "equal", ext: debugger.Value(42, "42"), outcome: OutcomeCorrect, matched: 1},
		{name: "different", ext: debugger.Value(41, "41"), outcome: OutcomeWrong},
		{name: "unavailable", ext: debugger.Unavailable("<variable not available>"), outcome: OutcomeUnavailable},
		{name: "parse error", ext: debugger.ParseError("x", errors.New("bad")), outcome: OutcomeWrong},
		{name: "driver failure", ext: debugger.Value(42, "42"), err: errors.New("launch"), outcome: OutcomeWrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport(1, config.TotalPolicyProcessed)
			rec := Score(r, d, tt.ext, tt.err)
			assert.Equal(t, tt.outcome, rec.Outcome)
			assert.Equal(t, tt.matched, r.Matched)
			assert.Equal(t, 1, r.Processed)
			assert.Len(t, r.Records, 1)
		})
	}
}
