package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkoval/companyboard/internal/company/config"
	"github.com/mkoval/companyboard/internal/company/controller"
	"github.com/mkoval/companyboard/internal/company/db"
	"github.com/mkoval/companyboard/internal/company/events"
	"github.com/mkoval/companyboard/internal/company/seed"
	"github.com/mkoval/companyboard/internal/company/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "companyboard",
	Short: "Company listing service",
	Long:  "companyboard serves a small company listing site and ships a seed command to reset the sample data.",

	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server until interrupted",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the company table to the four sample rows",
	RunE:  runSeed,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")
	rootCmd.AddCommand(serveCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := initLogger()
	defer syncLogger(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := db.NewRepository(databaseConfig(cfg))
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	producer, closeProducer := initProducer(cfg, logger)
	defer closeProducer()

	companySvc := controller.NewCompanyService(repo, producer, logger)

	router := web.NewRouter(companySvc, &web.Config{
		Debug:         cfg.Debug,
		AppRoot:       cfg.AppRoot,
		JWTSecret:     cfg.JWTSecret,
		AdminUser:     cfg.AdminUser,
		AdminPassword: cfg.AdminPassword,
	}, logger)

	server := web.NewServer(cfg.HTTPPort, router, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	if len(cfg.KafkaBrokers) > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		consumer := events.NewAuditConsumer(cfg.KafkaBrokers, "companyboard-audit", cfg.Topic, logger)
		consumer.Start(ctx)
		defer consumer.Close()
	}

	waitForShutdown(server, logger)
	return nil
}

func runSeed(_ *cobra.Command, _ []string) error {
	logger := initLogger()
	defer syncLogger(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := db.NewRepository(databaseConfig(cfg))
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	producer, closeProducer := initProducer(cfg, logger)
	defer closeProducer()

	seeder := seed.NewSeeder(repo, producer, logger)
	if err := seeder.Run(context.Background()); err != nil {
		logger.Error("seeding failed", zap.Error(err))
		return err
	}
	return nil
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

func syncLogger(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to sync logger:", err)
	}
}

func databaseConfig(cfg *config.Config) *db.Config {
	return &db.Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Path:     cfg.SQLitePath,
	}
}

// initProducer builds the Kafka producer, or a discard stand-in when no
// brokers are configured.
func initProducer(cfg *config.Config, logger *zap.Logger) (controller.EventProducer, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no Kafka brokers configured, events disabled")
		return events.Discard{}, func() {}
	}
	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
	}
	return producer, producer.Close
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down the server.
func waitForShutdown(server *web.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
