package trainer

import (
	"context"
	"flag"
	"testing"

	"github.com/louisbranch/gmtrainer/internal/errors"
)

func parseArgs(t *testing.T, args ...string) Config {
	t.Helper()
	fs := flag.NewFlagSet("trainer", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	return cfg
}

func TestParseConfigDefaults(t *testing.T) {
	cfg := parseArgs(t)
	if cfg.DatabasePath != "logs.db" {
		t.Errorf("database path = %q, want %q", cfg.DatabasePath, "logs.db")
	}
	if cfg.UI != UICLI {
		t.Errorf("ui = %q, want %q", cfg.UI, UICLI)
	}
	if cfg.Port != 7860 {
		t.Errorf("port = %d, want 7860", cfg.Port)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Errorf("provider = %q, want %q", cfg.Provider, ProviderAnthropic)
	}
	if cfg.ShowVersion {
		t.Error("show version defaulted on")
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("GM_TRAINER_DB_PATH", "/tmp/env.db")
	t.Setenv("GM_TRAINER_UI", "web")

	cfg := parseArgs(t, "-d", "/tmp/flag.db")
	if cfg.DatabasePath != "/tmp/flag.db" {
		t.Errorf("database path = %q, want flag value", cfg.DatabasePath)
	}
	// Env still applies to flags not given.
	if cfg.UI != UIWeb {
		t.Errorf("ui = %q, want env value %q", cfg.UI, UIWeb)
	}
}

func TestParseConfigLongFlags(t *testing.T) {
	cfg := parseArgs(t,
		"--database-path", "/tmp/long.db",
		"--user-interface", "web",
		"--port", "9000",
		"--scenario", "/tmp/chapel.lua",
		"--version",
	)
	if cfg.DatabasePath != "/tmp/long.db" {
		t.Errorf("database path = %q", cfg.DatabasePath)
	}
	if cfg.UI != UIWeb {
		t.Errorf("ui = %q", cfg.UI)
	}
	if cfg.Port != 9000 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.ScenarioFile != "/tmp/chapel.lua" {
		t.Errorf("scenario = %q", cfg.ScenarioFile)
	}
	if !cfg.ShowVersion {
		t.Error("show version not set")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		DatabasePath: "logs.db",
		UI:           UICLI,
		Provider:     ProviderAnthropic,
		APIKey:       "secret",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode errors.Code
	}{
		{
			name:     "missing api key",
			mutate:   func(c *Config) { c.APIKey = "" },
			wantCode: errors.CodeConfigMissingAPIKey,
		},
		{
			name:     "unknown ui",
			mutate:   func(c *Config) { c.UI = "gopher" },
			wantCode: errors.CodeConfigInvalidUI,
		},
		{
			name:     "unknown provider",
			mutate:   func(c *Config) { c.Provider = "parrot" },
			wantCode: errors.CodeConfigInvalidProvider,
		},
		{
			name:     "blank database path",
			mutate:   func(c *Config) { c.DatabasePath = "  " },
			wantCode: errors.CodeConfigInvalidDBPath,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if got := errors.GetCode(err); got != tc.wantCode {
				t.Fatalf("code = %s, want %s", got, tc.wantCode)
			}
		})
	}
}

func TestRunVersionSkipsValidation(t *testing.T) {
	// An otherwise invalid config must still print the version cleanly.
	cfg := Config{ShowVersion: true}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := Config{DatabasePath: "logs.db", UI: UICLI, Provider: ProviderAnthropic}
	err := Run(context.Background(), cfg)
	if got := errors.GetCode(err); got != errors.CodeConfigMissingAPIKey {
		t.Fatalf("code = %s, want %s", got, errors.CodeConfigMissingAPIKey)
	}
}

func TestRunRejectsBadScenarioFile(t *testing.T) {
	cfg := Config{
		DatabasePath: t.TempDir() + "/logs.db",
		UI:           UICLI,
		Provider:     ProviderAnthropic,
		APIKey:       "secret",
		ScenarioFile: t.TempDir() + "/missing.lua",
	}
	err := Run(context.Background(), cfg)
	if got := errors.GetCode(err); got != errors.CodeConfigInvalidScenario {
		t.Fatalf("code = %s, want %s", got, errors.CodeConfigInvalidScenario)
	}
}
