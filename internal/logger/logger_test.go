package logger

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/wmverify/internal/config"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  hclog.Level
	}{
		{name: "nil config", want: hclog.Info},
		{name: "config level", level: "debug", want: hclog.Debug},
		{name: "env wins over config", env: "error", level: "debug", want: hclog.Error},
		{name: "unknown level", level: "loud", want: hclog.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvLogLevel, tt.env)
			var cfg *config.Config
			if tt.level != "" {
				cfg = &config.Config{Logger: config.Logger{Level: tt.level}}
			}
			assert.Equal(t, tt.want, determineLogLevel(cfg))
		})
	}
}

func TestNewLogger(t *testing.T) {
	l := NewLogger(config.Default(), "test")
	assert.Equal(t, "test", l.Name())
	assert.True(t, l.IsInfo())
}
