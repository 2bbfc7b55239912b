package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/moments/internal/api"
	"github.com/terraincognita07/moments/internal/config"
	"github.com/terraincognita07/moments/internal/db"
	"github.com/terraincognita07/moments/internal/events"
	"github.com/terraincognita07/moments/internal/i18n"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file read before the environment")
	return cmd
}

func runServer(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	log := logger.NewWithWriter(os.Stdout, "moments", cfg.LogLevel)
	location := cfg.Location()

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	repositories := db.NewRepositories(database, cfg.StorageQuotaBytes)

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	lifecycleCtx, cancelLifecycle := context.WithCancel(parent)
	defer cancelLifecycle()

	hub := events.NewHub()
	db.NewKVWatcher(repositories.Durable, hub, cfg.WatchInterval, log).Start(lifecycleCtx)
	sessions := kv.NewSessions(cfg.SessionQuotaBytes, cfg.SessionTTL)
	sessions.Start(lifecycleCtx)

	handler, err := api.NewHandler(api.Options{
		Durable:      repositories.Durable,
		Hub:          hub,
		Sessions:     sessions,
		SecretKey:    cfg.SecretKey,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		Location:     location,
		I18n:         i18nManager,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler)

	sigCtx, stopSignals := signal.NotifyContext(lifecycleCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		handler.Close()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr()).
		Str("db", cfg.DBPath).
		Str("tz", location.String()).
		Msg("moments listening")
	if err := app.Listen(cfg.HTTPAddr()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Moments",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
