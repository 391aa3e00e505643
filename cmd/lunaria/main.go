package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lunarialabs/lunaria/internal/api"
	"github.com/lunarialabs/lunaria/internal/config"
	"github.com/lunarialabs/lunaria/internal/db"
	"github.com/lunarialabs/lunaria/internal/scheduler"
	"github.com/lunarialabs/lunaria/internal/services"
	"github.com/lunarialabs/lunaria/internal/weather"
	"github.com/lunarialabs/lunaria/pkg/logger"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "lunaria",
		Short: "Self-hosted menstrual cycle tracker",
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(resetPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		log.Warn("invalid timezone, falling back to UTC", zap.String("tz", cfg.Server.Timezone))
		location = time.UTC
	}

	database, err := db.OpenSQLite(cfg.DB.Path, logger.Named(log, "db"))
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}

	weatherClient := weather.NewClient(weather.Options{
		BaseURL:   cfg.Weather.BaseURL,
		Latitude:  cfg.Weather.Latitude,
		Longitude: cfg.Weather.Longitude,
		Location:  cfg.Weather.Location,
	})
	weatherService := weather.NewService(weatherClient, cfg.Weather.CacheTTL, logger.Named(log, "weather"))

	handler := api.NewHandler(database, cfg.Auth.SecretKey, cfg.Auth.CookieSecure, location, weatherService, logger.Named(log, "api"))

	app := fiber.New(fiber.Config{
		AppName:               "Lunaria",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	jobs := scheduler.New(weatherService, cfg.Weather.RefreshSpec, logger.Named(log, "scheduler"))
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer jobs.Stop()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("lunaria listening",
		zap.String("port", cfg.Server.Port),
		zap.String("db", cfg.DB.Path),
		zap.String("tz", location.String()),
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func resetPasswordCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			database, err := db.OpenSQLite(cfg.DB.Path, zap.NewNop())
			if err != nil {
				return fmt.Errorf("database init: %w", err)
			}

			repositories := db.NewRepositories(database)
			normalized, err := services.NormalizeEmail(email)
			if err != nil {
				return err
			}
			user, err := repositories.Users.FindByNormalizedEmail(normalized)
			if err != nil {
				return fmt.Errorf("user %s not found", normalized)
			}

			hash, err := services.HashPassword(password)
			if err != nil {
				return err
			}
			if err := repositories.Users.UpdatePassword(user.ID, hash); err != nil {
				return fmt.Errorf("update password: %w", err)
			}

			fmt.Printf("password updated for %s\n", normalized)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}
