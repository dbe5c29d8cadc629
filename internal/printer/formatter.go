// Package printer renders verification outcomes for humans.
package printer

import (
	"github.com/fatih/color"

	"github.com/scan-io-git/wmverify/internal/verifier"
)

// Formatter colors text by outcome. It holds no state besides the color switch,
// so any number of formatters can coexist.
type Formatter struct {
	Color bool
}

func (f Formatter) paint(attr color.Attribute, text string) string {
	c := color.New(attr)
	if f.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

// Outcome renders the line printed for a descriptor outcome.
func (f Formatter) Outcome(o verifier.Outcome) string {
	switch o {
	case verifier.OutcomeCorrect:
		return f.paint(color.FgGreen, "WATERMARK CORRECT")
	case verifier.OutcomeWrong:
		return f.paint(color.FgRed, "WATERMARK WRONG")
	case verifier.OutcomeUnavailable:
		return f.paint(color.FgYellow, "WATERMARK UNAVAILABLE")
	default:
		return f.paint(color.FgBlue, "SKIPPED")
	}
}

// Verdict renders text in the color of the verdict.
func (f Formatter) Verdict(v verifier.Verdict, text string) string {
	if v == verifier.VerdictSuccess {
		return f.paint(color.FgGreen, text)
	}
	return f.paint(color.FgRed, text)
}
