// Package trainer parses trainer command flags and wires the practice
// session: store, LLM client, orchestrator, and the chosen front end.
package trainer

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/louisbranch/gmtrainer/internal/errors"
	"github.com/louisbranch/gmtrainer/internal/game"
	"github.com/louisbranch/gmtrainer/internal/llm"
	entrypoint "github.com/louisbranch/gmtrainer/internal/platform/cmd"
	"github.com/louisbranch/gmtrainer/internal/scenario"
	"github.com/louisbranch/gmtrainer/internal/storage/sqlite"
	"github.com/louisbranch/gmtrainer/internal/telemetry"
	"github.com/louisbranch/gmtrainer/internal/ui/cli"
	"github.com/louisbranch/gmtrainer/internal/ui/web"
)

// Version is the release version reported by --version.
const Version = "0.1.0"

// UI choices.
const (
	UICLI = "cli"
	UIWeb = "web"
)

// Provider choices.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds trainer command configuration.
type Config struct {
	DatabasePath string `env:"GM_TRAINER_DB_PATH"          envDefault:"logs.db"`
	UI           string `env:"GM_TRAINER_UI"               envDefault:"cli"`
	Port         int    `env:"GM_TRAINER_WEB_PORT"         envDefault:"7860"`
	ScenarioFile string `env:"GM_TRAINER_SCENARIO_FILE"`
	APIKey       string `env:"GM_TRAINER_API_KEY"`
	Provider     string `env:"GM_TRAINER_PROVIDER"         envDefault:"anthropic"`
	Model        string `env:"GM_TRAINER_MODEL"`
	MaxTurns     int    `env:"GM_TRAINER_PROMPT_MAX_TURNS"`

	ShowVersion bool
}

// ParseConfig parses environment and flags into a Config. A .env file in
// the working directory is loaded first when present.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite session log database (shorthand)")
	fs.StringVar(&cfg.DatabasePath, "database-path", cfg.DatabasePath, "path to the SQLite session log database; created if missing")
	fs.StringVar(&cfg.UI, "u", cfg.UI, "user interface to use: cli or web (shorthand)")
	fs.StringVar(&cfg.UI, "user-interface", cfg.UI, "user interface to use: cli or web")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "port for the web UI; ignored by the cli UI")
	fs.StringVar(&cfg.ScenarioFile, "scenario", cfg.ScenarioFile, "path to a Lua scenario script; omit for the built-in scenario")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print the version and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the parsed configuration. Version-only runs skip
// validation since they never touch the table.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		return errors.New(errors.CodeConfigInvalidDBPath, "database path is required")
	}
	switch cfg.UI {
	case UICLI, UIWeb:
	default:
		return errors.Newf(errors.CodeConfigInvalidUI, "unknown user interface %q: choose cli or web", cfg.UI)
	}
	switch cfg.Provider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return errors.Newf(errors.CodeConfigInvalidProvider, "unknown provider %q: choose anthropic or gemini", cfg.Provider)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return errors.New(errors.CodeConfigMissingAPIKey, "GM_TRAINER_API_KEY is required")
	}
	return nil
}

// Run executes the trainer with the given configuration.
func Run(ctx context.Context, cfg Config) error {
	if cfg.ShowVersion {
		fmt.Println("gmtrainer " + Version)
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTrainer, func(ctx context.Context) error {
		return runSession(ctx, cfg)
	})
}

func runSession(ctx context.Context, cfg Config) error {
	scn, err := loadScenario(cfg)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return errors.Wrap(errors.CodeStorageUnavailable, "open session log", err)
	}
	defer store.Close()

	client, closeClient, err := buildClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeClient()

	orc := game.NewOrchestrator(game.OrchestratorConfig{
		Sessions:  store,
		Turns:     store,
		Telemetry: telemetry.NewEmitter(store),
		Client:    client,
		Roster:    scn.Roster,
		Window:    game.Window{MaxTurns: cfg.MaxTurns},
	})

	switch cfg.UI {
	case UIWeb:
		return web.NewServer(orc, scn).Run(ctx, fmt.Sprintf(":%d", cfg.Port))
	default:
		return cli.New(orc, scn, os.Stdin, os.Stdout).Run(ctx)
	}
}

func loadScenario(cfg Config) (*scenario.Scenario, error) {
	if strings.TrimSpace(cfg.ScenarioFile) == "" {
		return scenario.Default(), nil
	}
	return scenario.Load(cfg.ScenarioFile)
}

// buildClient picks the provider adapter and wraps it with retries.
func buildClient(ctx context.Context, cfg Config) (llm.Client, func(), error) {
	noop := func() {}
	switch cfg.Provider {
	case ProviderGemini:
		inner, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			return nil, noop, err
		}
		closeClient := func() { _ = inner.Close() }
		return llm.NewRetryClient(inner, llm.RetryConfig{}), closeClient, nil
	default:
		inner, err := llm.NewAnthropicClient(llm.AnthropicConfig{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			return nil, noop, err
		}
		return llm.NewRetryClient(inner, llm.RetryConfig{}), noop, nil
	}
}
