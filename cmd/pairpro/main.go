package main

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pairpro/pairpro-cli/internal/core/service"
	"github.com/pairpro/pairpro-cli/internal/infrastructure/api"
	"github.com/pairpro/pairpro-cli/internal/infrastructure/config"
	"github.com/pairpro/pairpro-cli/internal/infrastructure/token"
	"github.com/pairpro/pairpro-cli/internal/infrastructure/upload"
	"github.com/pairpro/pairpro-cli/internal/ui"
	"github.com/pairpro/pairpro-cli/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg := config.Load()

	logOpts := logger.Options{Level: cfg.LogLevel}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOpts.Output = f
	}
	log := logger.Init(logOpts)

	tokenPath := cfg.TokenFile
	if tokenPath == "" {
		p, err := token.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve token path: %w", err)
		}
		tokenPath = p
	}
	store := token.NewFileStore(tokenPath)

	client := api.NewClient(api.Options{
		BaseURL: cfg.APIBase,
		Store:   store,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})

	sessions := service.NewSessionService(api.NewAuthAPI(client), store, log)
	directory := service.NewDirectoryService(api.NewProviderAPI(client), log)
	uploader := upload.NewCloudinaryUploader(upload.Options{BaseURL: cfg.UploadBase, Logger: log})
	jobs := service.NewJobService(api.NewJobAPI(client), api.NewUploadAPI(client), uploader, log)

	if cfg.MetricsAddr != "" {
		e := echo.New()
		e.HideBanner = true
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
		go func() {
			if err := e.Start(cfg.MetricsAddr); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	program := tea.NewProgram(ui.NewModel(sessions, directory, jobs, log), tea.WithAltScreen())

	// Server-side rejections clear the store from inside the fetch layer;
	// this pushes that fact into the update loop no matter which call hit it.
	unsubscribe := store.Subscribe(func(present bool) {
		if !present {
			program.Send(ui.SessionEndedMsg{})
		}
	})
	defer unsubscribe()

	_, err := program.Run()
	return err
}
