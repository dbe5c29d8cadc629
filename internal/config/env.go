package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables overriding the YAML configuration.
const (
	EnvLogLevel    = "WMVERIFY_LOG_LEVEL"
	EnvMaxHitCount = "WMVERIFY_MAX_HIT_COUNT"
	EnvDebugger    = "WMVERIFY_DEBUGGER"
	EnvTempFolder  = "WMVERIFY_TEMP_FOLDER"
	EnvNoColor     = "NO_COLOR"
)

// applyEnv overrides config values with the environment variables that are set.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv(EnvDebugger); v != "" {
		cfg.Debugger.Path = v
	}
	if v := os.Getenv(EnvTempFolder); v != "" {
		cfg.Debugger.TempFolder = v
	}
	if v := os.Getenv(EnvMaxHitCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvMaxHitCount, v, err)
		}
		cfg.Verifier.MaxHitCount = &n
	}
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		off := false
		cfg.Output.Color = &off
	}
	return nil
}
