package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, "config.yaml")
	err := os.WriteFile(tempFile, []byte(content), 0644)
	require.NoError(t, err, "Failed to create temporary config file")
	return tempFile
}

func boolPtr(b bool) *bool {
	return &b
}

func TestLoadConfig_Valid(t *testing.T) {
	path := createTempConfigFile(t, `
app_log:
  level: INFO
defaults:
  dir: /var/log/jobs
  level: INFO
  console: true
  mode: daily
loggers:
  - match: "jobs.*"
    level: DEBUG
    mode: run
  - match: "quiet-*"
    console: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "INFO", cfg.AppLog.Level)
	assert.Equal(t, "/var/log/jobs", cfg.Defaults.Dir)
	assert.Equal(t, "daily", cfg.Defaults.Mode)
	require.NotNil(t, cfg.Defaults.Console)
	assert.True(t, *cfg.Defaults.Console)

	require.Len(t, cfg.Loggers, 2)
	assert.Equal(t, "jobs.*", cfg.Loggers[0].Match)
	assert.Equal(t, "DEBUG", cfg.Loggers[0].Level)
	assert.Equal(t, "run", cfg.Loggers[0].Mode)
	assert.Nil(t, cfg.Loggers[0].Console)
	require.NotNil(t, cfg.Loggers[1].Console)
	assert.False(t, *cfg.Loggers[1].Console)
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(createTempConfigFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "WARNING", cfg.AppLog.Level)
	assert.Empty(t, cfg.Loggers)
	assert.Equal(t, LoggerSettings{}, cfg.Defaults)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "Invalid YAML",
			content:     "defaults: [unclosed",
			errContains: "error parsing config file",
		},
		{
			name:        "Unknown default mode",
			content:     "defaults:\n  mode: hourly\n",
			errContains: "Mode",
		},
		{
			name:        "Unknown rule level",
			content:     "loggers:\n  - match: a\n    level: LOUD\n",
			errContains: "Level",
		},
		{
			name:        "Rule without match",
			content:     "loggers:\n  - level: DEBUG\n",
			errContains: "Match",
		},
		{
			name:        "Invalid glob",
			content:     "loggers:\n  - match: \"[abc\"\n",
			errContains: "invalid match glob pattern",
		},
		{
			name:        "Invalid app log level",
			content:     "app_log:\n  level: chatty\n",
			errContains: "app_log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(createTempConfigFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoadConfig_LevelNamesIgnoreCase(t *testing.T) {
	content := "app_log:\n  level: Warn\ndefaults:\n  level: Debug\nloggers:\n  - match: a\n    level: cRiTiCaL\n"
	cfg, err := LoadConfig(createTempConfigFile(t, content))
	require.NoError(t, err)
	assert.Equal(t, "Debug", cfg.Defaults.Level)
	assert.Equal(t, "cRiTiCaL", cfg.Loggers[0].Level)

	_, err = LoadConfig(createTempConfigFile(t, "defaults:\n  level: Loud\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'loglevel' tag")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSettingsFor(t *testing.T) {
	cfg := Default()
	cfg.Defaults = LoggerSettings{Dir: "logs", Level: "INFO", Console: boolPtr(true), Mode: "daily"}
	cfg.Loggers = []LoggerRule{
		{Match: "jobs*", LoggerSettings: LoggerSettings{Level: "DEBUG", Mode: "run"}},
		{Match: "jobs-nightly", LoggerSettings: LoggerSettings{Console: boolPtr(false)}},
		{Match: "batch-?", LoggerSettings: LoggerSettings{Dir: "/tmp/batch"}},
	}
	require.NoError(t, ValidateConfig(cfg))

	// First matching rule wins, unset fields come from defaults
	jobs := cfg.SettingsFor("jobs-nightly")
	assert.Equal(t, "DEBUG", jobs.Level)
	assert.Equal(t, "run", jobs.Mode)
	assert.Equal(t, "logs", jobs.Dir)
	require.NotNil(t, jobs.Console)
	assert.True(t, *jobs.Console)

	batch := cfg.SettingsFor("batch-1")
	assert.Equal(t, "/tmp/batch", batch.Dir)
	assert.Equal(t, "INFO", batch.Level)

	other := cfg.SettingsFor("model_building")
	assert.Equal(t, cfg.Defaults, other)
}

func TestSettingsFor_UncompiledRules(t *testing.T) {
	cfg := &Config{Loggers: []LoggerRule{{Match: "api-*", LoggerSettings: LoggerSettings{Mode: "run"}}}}
	assert.Equal(t, "run", cfg.SettingsFor("api-gateway").Mode)
	assert.Equal(t, "", cfg.SettingsFor("worker").Mode)
}

func TestLoggerSettings_YAMLRoundTripKeepsUnsetFields(t *testing.T) {
	out, err := yaml.Marshal(LoggerRule{Match: "x", LoggerSettings: LoggerSettings{Level: "ERROR"}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "level: ERROR")
	assert.NotContains(t, string(out), "console")
	assert.NotContains(t, string(out), "dir")
}
