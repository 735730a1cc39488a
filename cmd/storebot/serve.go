package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ypbrand/storebot/internal/config"
	"github.com/ypbrand/storebot/internal/httpapi"
	"github.com/ypbrand/storebot/internal/logger"
	"github.com/ypbrand/storebot/internal/metrics"
	"github.com/ypbrand/storebot/internal/telegram"
	"github.com/ypbrand/storebot/internal/version"
)

var (
	serveConfigPath string
	serveLogLevel   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront bot (main command)",
	Long: `Start the storefront bot with the specified configuration.
This initializes the logger, metrics, the Telegram session and the
operator HTTP API, and handles graceful shutdown.`,
	Run: serveHandler,
}

func serveHandler(cmd *cobra.Command, args []string) {
	if err := config.LoadEnvOptional("./.env"); err != nil {
		fmt.Printf("❌ Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	configPath := serveConfigPath
	if configPath == "" {
		configPath = "./config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if serveLogLevel != "" {
		cfg.Logging.Level = serveLogLevel
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Println("❌ Configuration validation failed:")
		for _, e := range errs {
			fmt.Printf("  - %v\n", e)
		}
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	log.Info("🚀 Starting storebot",
		logger.Field{Key: "version", Value: version.Version},
		logger.Field{Key: "git_commit", Value: version.GitCommit},
		logger.Field{Key: "config", Value: configPath},
		logger.Field{Key: "webapp_url", Value: cfg.Store.WebAppURL},
		logger.Field{Key: "admins", Value: len(cfg.Bot.AdminIDs)})

	if len(cfg.Bot.AdminIDs) == 0 {
		log.Warn("bot.admin_ids is empty, admin features are disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	registry := prometheus.NewRegistry()
	m := metrics.New("storebot", registry)

	session := telegram.NewSession(cfg.Bot, cfg.Store, cfg.Feed, log, m, nil)
	if err := session.Start(ctx); err != nil {
		log.Error("Failed to start bot session", err)
		os.Exit(1)
	}

	var api *httpapi.Server
	if cfg.HTTP.Enabled {
		api = httpapi.New(cfg.HTTP, session, registry, log)
		api.Start()
	} else {
		log.Warn("operator http api is disabled")
	}

	sig := <-sigChan
	log.Info("received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})

	session.Stop()

	if api != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := api.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down http api", err)
		}
	}

	log.Info("storebot stopped")
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to config file (default ./config.toml)")
	serveCmd.Flags().StringVarP(&serveLogLevel, "log-level", "l", "", "override log level (debug, info, warn, error)")
}
