package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medrecords-backend/internal/config"
	"medrecords-backend/internal/handlers"
	"medrecords-backend/internal/routes"
	"medrecords-backend/internal/storage"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "api",
		Short: "Medical records API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, err := config.ConnectDB(cfg, logger)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return err
			}
			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

func setup() (*config.Config, zerolog.Logger, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return nil, logger, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, logger, err
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return cfg, logger, nil
}

func newHandler(cfg *config.Config, db *gorm.DB, logger zerolog.Logger) (*handlers.Handler, error) {
	h := &handlers.Handler{
		DB:      db,
		Hasher:  utils.BcryptHasher{},
		Tokens:  utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAlgorithm),
		Mailer:  utils.LogMailer{Log: logger},
		BaseURL: cfg.AppBaseURL,
		Log:     logger,
	}

	if cfg.PasswordMode == "remote" {
		h.Hasher = utils.NewRemoteCipher(cfg.EncryptionServiceURL, cfg.EncryptionKey, cfg.EncryptionTimeout)
	}
	if cfg.MailHost != "" {
		h.Mailer = utils.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom)
	} else {
		logger.Warn().Msg("MAIL_HOST not set, confirmation emails will only be logged")
	}
	if cfg.S3Bucket != "" {
		store, err := storage.NewS3Store(context.Background(), cfg.S3Bucket, cfg.S3Endpoint, cfg.S3PublicURL)
		if err != nil {
			return nil, err
		}
		h.Blobs = store
	}
	return h, nil
}

func runServer() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	// Database
	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	if err := config.Migrate(db); err != nil {
		logger.Error().Err(err).Msg("failed to migrate database")
		return err
	}

	h, err := newHandler(cfg, db, logger)
	if err != nil {
		return err
	}

	// Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.SetupRoutes(r, h, routes.Options{
		Log:            logger,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info().Msg("server stopped")
	return nil
}
