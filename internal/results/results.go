// Package results writes verification reports to files.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/wmverify/internal/config"
	"github.com/scan-io-git/wmverify/internal/files"
	"github.com/scan-io-git/wmverify/internal/template"
	"github.com/scan-io-git/wmverify/internal/verifier"
)

const (
	toolName = "wmverify"
	toolURI  = "https://github.com/scan-io-git/wmverify"

	ruleWrong       = "watermark-wrong"
	ruleUnavailable = "watermark-unavailable"
	ruleSkipped     = "watermark-skipped"
)

// Run describes the inputs of a verification run.
type Run struct {
	Debugger    string    `json:"debugger"`
	Dialect     string    `json:"dialect"`
	Executable  string    `json:"executable"`
	Source      string    `json:"source,omitempty"` // source file the descriptor lines refer to
	Descriptors string    `json:"descriptors"`
	StartedAt   time.Time `json:"started_at"`
}

// Document is the JSON result file.
type Document struct {
	Run    Run              `json:"run"`
	Report *verifier.Report `json:"report"`
}

// Write saves the report at path in the given format and returns the written path.
// A directory path gets a generated file name.
func Write(path, format string, run Run, report *verifier.Report) (string, error) {
	nameTemplate := fmt.Sprintf("wmverify-report-%s.%s", run.StartedAt.UTC().Format("20060102T150405Z"), format)
	fullPath, folder, err := files.DetermineFileFullPath(path, nameTemplate)
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}

	switch format {
	case config.FormatJSON:
		return fullPath, writeJSON(fullPath, run, report)
	case config.FormatSARIF:
		return fullPath, writeSARIF(fullPath, run, report)
	case config.FormatHTML:
		return fullPath, writeHTML(fullPath, run, report)
	default:
		return "", fmt.Errorf("unsupported report format %q", format)
	}
}

func writeJSON(path string, run Run, report *verifier.Report) error {
	data, err := json.MarshalIndent(Document{Run: run, Report: report}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return files.WriteJSONFile(path, data)
}

// BuildSARIF converts the report into a SARIF log. Correct watermarks produce no
// result; every other outcome is reported at the descriptor's source location.
func BuildSARIF(run Run, report *verifier.Report) (*sarif.Report, error) {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	sarifRun := sarif.NewRunWithInformationURI(toolName, toolURI)
	sarifRun.AddRule(ruleWrong).
		WithDescription("The inspected variable does not hold the expected watermark value.").
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "error"})
	sarifRun.AddRule(ruleUnavailable).
		WithDescription("The debugger could not show the variable at the watermark location.").
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "note"})
	sarifRun.AddRule(ruleSkipped).
		WithDescription("The hit count exceeds the configured ceiling; the run was stopped.").
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "warning"})

	artifact := run.Source
	if artifact == "" {
		artifact = filepath.Base(run.Executable)
	}
	for _, rec := range report.Records {
		ruleID, level := ruleFor(rec.Outcome)
		if ruleID == "" {
			continue
		}
		d := rec.Descriptor
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(artifact)).
				WithRegion(sarif.NewRegion().WithStartLine(d.Line).WithStartColumn(d.Column)),
		)
		result := sarif.NewRuleResult(ruleID).
			WithMessage(sarif.NewTextMessage(message(rec))).
			WithLevel(level).
			WithLocations([]*sarif.Location{location})
		sarifRun.AddResult(result)
	}

	log.AddRun(sarifRun)
	return log, nil
}

func writeSARIF(path string, run Run, report *verifier.Report) error {
	log, err := BuildSARIF(run, report)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	if err := log.PrettyWrite(file); err != nil {
		file.Close()
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing SARIF report: %w", err)
	}
	return nil
}

// writeHTML renders the report with the embedded HTML template.
func writeHTML(path string, run Run, report *verifier.Report) error {
	tmpl, err := template.NewTemplate()
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error writing HTML report: %w", err)
	}
	if err := tmpl.Execute(file, Document{Run: run, Report: report}); err != nil {
		file.Close()
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing HTML report: %w", err)
	}
	return nil
}

func ruleFor(o verifier.Outcome) (string, string) {
	switch o {
	case verifier.OutcomeWrong:
		return ruleWrong, "error"
	case verifier.OutcomeUnavailable:
		return ruleUnavailable, "note"
	case verifier.OutcomeSkipped:
		return ruleSkipped, "warning"
	default:
		return "", ""
	}
}

func message(rec verifier.Record) string {
	d := rec.Descriptor
	prefix := fmt.Sprintf("%s at hit %d", d.Variable, d.HitCount)
	switch {
	case rec.Outcome == verifier.OutcomeSkipped:
		return fmt.Sprintf("%s: hit count is above the ceiling", prefix)
	case rec.Error != "":
		return fmt.Sprintf("%s: expected %d: %s", prefix, d.Expected, rec.Error)
	case rec.Outcome == verifier.OutcomeUnavailable:
		return fmt.Sprintf("%s: %s", prefix, rec.Observed)
	default:
		return fmt.Sprintf("%s: expected %d, observed %s", prefix, d.Expected, rec.Observed)
	}
}
