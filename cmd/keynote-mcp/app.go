package main

import (
	"errors"
	"fmt"

	"keynote-mcp/internal/automation"
	"keynote-mcp/internal/config"
	"keynote-mcp/internal/hook"
	"keynote-mcp/internal/hook/handlers"
	"keynote-mcp/internal/keynote"
	"keynote-mcp/internal/logger"
	"keynote-mcp/internal/tool"
	"keynote-mcp/internal/unsplash"
)

// app holds the components every command shares
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	runner     *automation.Runner
	service    *keynote.Service
	dispatcher *tool.Dispatcher
	hooks      *hook.Manager
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		if err := config.LoadEnvFile(".env"); err != nil {
			return nil, err
		}
		return config.Load(configPath)
	}
	return config.LoadWithDefaults()
}

// newApp loads configuration and wires the tool stack. It never touches
// stdout, which belongs to the MCP protocol when serving.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = string(logger.LevelDebug)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		File:   cfg.Logging.File,
		Pretty: cfg.Logging.Pretty,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	runner := automation.NewRunner(automation.RunnerConfig{
		Interpreter:    cfg.Automation.Interpreter,
		Compiler:       cfg.Automation.Compiler,
		Timeout:        cfg.Automation.Timeout(),
		CompileTimeout: cfg.Automation.CompileTimeout(),
	}, log.With("component", "runner"))

	opts := keynote.Options{
		Timeout:     cfg.Automation.Timeout(),
		DownloadDir: cfg.Unsplash.DownloadDir,
		Logger:      log.With("component", "keynote"),
	}
	if cfg.Automation.SerializeDocuments {
		opts.Lanes = automation.NewLanes()
	}

	images, err := unsplash.New(unsplash.Config{
		AccessKey: cfg.Unsplash.AccessKey,
		BaseURL:   cfg.Unsplash.BaseURL,
		Timeout:   cfg.Unsplash.Timeout(),
		Logger:    log.With("component", "unsplash"),
	})
	switch {
	case errors.Is(err, unsplash.ErrNoAccessKey):
		log.Warn("UNSPLASH_KEY is not set, image tools are disabled")
	case err != nil:
		return nil, fmt.Errorf("failed to create unsplash client: %w", err)
	default:
		opts.Images = images
	}

	service := keynote.NewService(runner, opts)

	registry := tool.NewRegistry()
	if err := service.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	hooks := hook.NewManager()
	if len(cfg.Hooks.Deny) > 0 {
		hooks.Register(handlers.NewToolDenyHandler(cfg.Hooks.Deny...))
		log.Info("denying tools: %v", cfg.Hooks.Deny)
	}

	dispatcher := tool.NewDispatcher(registry, log.With("component", "dispatcher"))
	dispatcher.SetHookManager(hooks)

	log.Debug("registered %d tools", registry.Len())

	return &app{
		cfg:        cfg,
		log:        log,
		runner:     runner,
		service:    service,
		dispatcher: dispatcher,
		hooks:      hooks,
	}, nil
}

func (a *app) Close() {
	a.log.Close()
}
