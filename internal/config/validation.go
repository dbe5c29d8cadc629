package config

import (
	"fmt"
	"strings"
	"time"
)

var supportedDialects = []string{"lldb", "gdb"}

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateDebuggerConfig(&cfg.Debugger); err != nil {
		return fmt.Errorf("YAML global config: debugger directive is invalid: %w", err)
	}
	if err := ValidateVerifierConfig(&cfg.Verifier); err != nil {
		return fmt.Errorf("YAML global config: verifier directive is invalid: %w", err)
	}
	if err := ValidateOutputConfig(&cfg.Output); err != nil {
		return fmt.Errorf("YAML global config: output directive is invalid: %w", err)
	}
	return nil
}

// ValidateDebuggerConfig checks if the debugger configurations have valid values.
func ValidateDebuggerConfig(dbg *Debugger) error {
	if dbg == nil {
		return fmt.Errorf("debugger configuration is nil")
	}
	if err := ValidateDialect(dbg.Dialect); err != nil {
		return err
	}
	return validateDuration(dbg.Timeout, "timeout", 24*time.Hour)
}

// ValidateDialect checks that the debugger dialect is supported.
func ValidateDialect(dialect string) error {
	for _, d := range supportedDialects {
		if strings.EqualFold(d, dialect) {
			return nil
		}
	}
	return fmt.Errorf("unsupported debugger dialect %q, expected one of: %s", dialect, strings.Join(supportedDialects, ", "))
}

// ValidateVerifierConfig checks if the verifier configurations have valid values.
func ValidateVerifierConfig(v *Verifier) error {
	if v == nil {
		return fmt.Errorf("verifier configuration is nil")
	}
	if v.MaxHitCount != nil && *v.MaxHitCount < 0 {
		return fmt.Errorf("max_hit_count cannot be negative: %d", *v.MaxHitCount)
	}
	return ValidateTotalPolicy(v.TotalPolicy)
}

// ValidateTotalPolicy checks that the total policy is known.
func ValidateTotalPolicy(policy string) error {
	switch policy {
	case TotalPolicyProcessed, TotalPolicyLoaded:
		return nil
	default:
		return fmt.Errorf("unknown total_policy %q, expected %q or %q", policy, TotalPolicyProcessed, TotalPolicyLoaded)
	}
}

// ValidateOutputConfig checks if the output configurations have valid values.
func ValidateOutputConfig(o *Output) error {
	if o == nil {
		return fmt.Errorf("output configuration is nil")
	}
	return ValidateFormat(o.Format)
}

// ValidateFormat checks that the result artifact format is known.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatSARIF, FormatHTML:
		return nil
	default:
		return fmt.Errorf("unknown report format %q, expected one of: %s, %s, %s", format, FormatJSON, FormatSARIF, FormatHTML)
	}
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}
