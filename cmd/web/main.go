package main

import (
	"context"
	"github.com/joho/godotenv"
	"github.com/lifeline-dispatch/lifeline/internal/ai"
	"github.com/lifeline-dispatch/lifeline/internal/callflow"
	"github.com/lifeline-dispatch/lifeline/internal/db"
	"github.com/lifeline-dispatch/lifeline/internal/envstruct"
	"github.com/lifeline-dispatch/lifeline/internal/errors"
	"github.com/lifeline-dispatch/lifeline/internal/logging"
	"github.com/lifeline-dispatch/lifeline/internal/pprofserver"
	"github.com/lifeline-dispatch/lifeline/internal/repositories"
	"github.com/sashabaranov/go-openai"
	"log/slog"
	"os"
	"time"
)

type application struct {
	logger    *slog.Logger
	extractor *ai.Extractor
	incidents *repositories.IncidentRepository
	calls     *callflow.Store
	script    *callflow.Script
}

type config struct {
	Addr string `env:"LIFELINE_ADDR" envDefault:"localhost:4000"`
	// PprofPort is the localhost pprof listener; "off" disables it.
	PprofPort     string `env:"LIFELINE_PPROF_PORT" envDefault:":6060"`
	OpenAIKey     string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:""`
	// MockAI selects heuristic-only extraction when set to "1".
	MockAI string `env:"MOCK_AI" envDefault:"0"`
}

// sessionTTL bounds how long a stalled call keeps its session entry alive.
const sessionTTL = 10 * time.Minute

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse environment")
	}

	if cfg.PprofPort != "off" {
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	// Incidents are transient by design; the store vanishes with the process.
	dbs, err := db.NewDB(":memory:")
	if err != nil {
		return errors.Wrap(err, "open database")
	}

	var extractor *ai.Extractor
	if cfg.MockAI == "1" {
		extractor = ai.NewMockExtractor(logger)
	} else {
		clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
		if cfg.OpenAIBaseURL != "" {
			clientConfig.BaseURL = cfg.OpenAIBaseURL
		}
		extractor = ai.NewExtractor(openai.NewClientWithConfig(clientConfig), cfg.OpenAIModel, logger)
	}

	calls := callflow.NewStore(sessionTTL, logger)
	defer calls.Close()

	incidents := repositories.NewIncidentRepository(dbs, logger)

	app := application{
		logger:    logger,
		extractor: extractor,
		incidents: incidents,
		calls:     calls,
		script:    callflow.NewScript(calls, extractor, incidents, logger),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)

	// Missing .env is fine; the environment may be set by the process manager.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", errors.SlogError(err))
	}

	if err := run(context.Background(), logger, os.LookupEnv); err != nil {
		logger.Error("server exited", errors.SlogError(err))
		os.Exit(1)
	}
}
