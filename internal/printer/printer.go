package printer

import (
	"fmt"
	"io"

	"github.com/scan-io-git/wmverify/internal/verifier"
	"github.com/scan-io-git/wmverify/internal/watermark"
)

const banner = "--------------------"

// Printer streams outcomes to a writer. It implements verifier.Observer.
type Printer struct {
	out       io.Writer
	formatter Formatter
	verbose   bool
}

// New creates a Printer. In verbose mode every line carries the descriptor and
// unavailable variables are reported too.
func New(out io.Writer, colored, verbose bool) *Printer {
	return &Printer{out: out, formatter: Formatter{Color: colored}, verbose: verbose}
}

// Outcome prints one descriptor outcome.
func (p *Printer) Outcome(rec verifier.Record) {
	if rec.Outcome == verifier.OutcomeUnavailable && !p.verbose {
		return
	}
	line := p.formatter.Outcome(rec.Outcome)
	if p.verbose {
		line += "  " + describe(rec)
	}
	fmt.Fprintln(p.out, line)
}

// Skipped prints the skip marker.
func (p *Printer) Skipped(desc watermark.Descriptor, limit int) {
	line := p.formatter.Outcome(verifier.OutcomeSkipped)
	if p.verbose {
		line += fmt.Sprintf("  #%d hit count %d exceeds %d", desc.Index, desc.HitCount, limit)
	}
	fmt.Fprintln(p.out, line)
}

// Summary prints the final banner.
func (p *Printer) Summary(r *verifier.Report) {
	fmt.Fprintln(p.out, banner)
	if r.Succeeded() {
		fmt.Fprintln(p.out, p.formatter.Verdict(r.Verdict, "SUCCESS"))
		fmt.Fprintln(p.out, p.formatter.Verdict(r.Verdict, r.Ratio()+" found"))
	} else {
		fmt.Fprintln(p.out, p.formatter.Verdict(r.Verdict, "FAILURE"))
		fmt.Fprintln(p.out, p.formatter.Verdict(r.Verdict, r.Ratio()+" watermarks found"))
	}
	fmt.Fprintln(p.out, banner)
}

func describe(rec verifier.Record) string {
	d := rec.Descriptor
	s := fmt.Sprintf("#%d %s hit %d %s", d.Index, d.Location(), d.HitCount, d.Variable)
	switch {
	case rec.Error != "":
		s += fmt.Sprintf(" (expected %d): %s", d.Expected, rec.Error)
	case rec.Outcome == verifier.OutcomeWrong:
		s += fmt.Sprintf(" = %s, expected %d", rec.Observed, d.Expected)
	default:
		s += " = " + rec.Observed
	}
	return s
}
