package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/lecture-companion/internal/config"
	"github.com/phrazzld/lecture-companion/internal/generation"
	"github.com/phrazzld/lecture-companion/internal/platform/gemini"
	"github.com/phrazzld/lecture-companion/internal/platform/logger"
	"github.com/phrazzld/lecture-companion/internal/platform/openai"
)

// application holds the shared dependencies of every subcommand.
type application struct {
	config  *config.Config
	manager *config.Manager

	logger   *slog.Logger
	logLevel *slog.LevelVar

	backend  generation.Backend
	pipeline *generation.Pipeline
}

// newApplication loads configuration from configPath, sets up logging to
// logOut and builds the generation pipeline for the configured provider.
// Log level changes in the config file are applied while the process runs.
func newApplication(ctx context.Context, configPath string, logOut io.Writer) (*application, error) {
	manager, err := config.NewManager(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := manager.Get()

	l, level := logger.Setup(cfg.Server, logOut)
	l.Info("Configuration loaded",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.ModelName,
		"log_level", cfg.Server.LogLevel,
		"extractor", cfg.LLM.Extractor,
		"validation", cfg.LLM.Validation)

	backend, err := newBackend(ctx, l, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", cfg.LLM.Provider, err)
	}

	pipeline, err := newPipeline(backend, l, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation pipeline: %w", err)
	}

	manager.OnChange(func(c *config.Config) {
		if !logger.SetLevel(level, c.Server.LogLevel) {
			l.Warn("Unknown log level in reloaded configuration", "log_level", c.Server.LogLevel)
			return
		}
		l.Info("Log level updated", "log_level", c.Server.LogLevel)
	})
	manager.Watch(l)

	return &application{
		config:   cfg,
		manager:  manager,
		logger:   l,
		logLevel: level,
		backend:  backend,
		pipeline: pipeline,
	}, nil
}

// newBackend creates the backend for the configured provider.
func newBackend(ctx context.Context, l *slog.Logger, cfg config.LLMConfig) (generation.Backend, error) {
	l = l.With("component", "llm_backend")
	switch cfg.Provider {
	case config.ProviderGemini:
		b, err := gemini.NewBackend(ctx, l, cfg)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.ProviderOpenAI:
		b, err := openai.NewBackend(l, cfg, nil)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// newPipeline creates a pipeline using the configured extractor and
// validation mode.
func newPipeline(backend generation.Backend, l *slog.Logger, cfg config.LLMConfig) (*generation.Pipeline, error) {
	extractor, err := generation.NewExtractor(cfg.Extractor)
	if err != nil {
		return nil, err
	}
	mode, err := generation.ParseValidationMode(cfg.Validation)
	if err != nil {
		return nil, err
	}
	validator, err := generation.NewValidator(mode)
	if err != nil {
		return nil, err
	}

	return generation.NewPipeline(backend, l.With("component", "pipeline"),
		generation.WithExtractor(extractor),
		generation.WithValidator(validator))
}
