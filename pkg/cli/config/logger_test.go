package config_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/keycodes/pkg/cli/config"
	"github.com/m-mizutani/keycodes/pkg/domain/types"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "Valid level: debug", level: "debug"},
		{name: "Valid level: DEBUG (case insensitive)", level: "DEBUG"},
		{name: "Valid level: info", level: "info"},
		{name: "Valid level: warn", level: "warn"},
		{name: "Valid level: WARN", level: "WARN"},
		{name: "Valid level: error", level: "error"},
		{name: "Invalid level: invalid", level: "invalid", wantErr: true},
		{name: "Invalid level: empty string", level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &config.Logger{
				Level:  tt.level,
				Format: "console",
				Output: &buf,
			}

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, result).Nil()
				return
			}

			gt.NoError(t, err)
			gt.Value(t, result).NotNil()
		})
	}
}

func TestLogger_Configure_Format(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "console", format: "console"},
		{name: "json", format: "json"},
		{name: "JSON (case insensitive)", format: "JSON"},
		{name: "default when empty", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &config.Logger{Level: "info", Format: tt.format, Output: &buf}

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)

			result.Info("test log message")
			gt.True(t, strings.Contains(buf.String(), "test log message"))
		})
	}
}

func TestLogger_Configure_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "warn", Format: "json", Output: &buf}

	result, err := logger.Configure()
	gt.NoError(t, err)

	result.Info("hidden message")
	result.Warn("visible message")

	gt.True(t, !strings.Contains(buf.String(), "hidden message"))
	gt.True(t, strings.Contains(buf.String(), "visible message"))
}

func TestLogger_Configure_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "info", Format: "json", Output: &buf}

	result, err := logger.Configure()
	gt.NoError(t, err)

	result.Info("Starting", slog.Any("credential", types.Credential{
		ClientID:     "visible-client-id",
		ClientSecret: "very-secret-value",
	}))

	gt.True(t, strings.Contains(buf.String(), "visible-client-id"))
	gt.True(t, !strings.Contains(buf.String(), "very-secret-value"))
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()

	gt.Number(t, len(flags)).Equal(2)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		switch f := flag.(type) {
		case interface{ Names() []string }:
			names := f.Names()
			if len(names) > 0 {
				flagNames[names[0]] = true
			}
		}
	}

	gt.True(t, flagNames["log-level"])
	gt.True(t, flagNames["log-format"])
}
