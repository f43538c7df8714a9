package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/go-auth-otp/internal/auth"
	"github.com/redmonkez12/go-auth-otp/internal/config"
	"github.com/redmonkez12/go-auth-otp/internal/email"
	httpServer "github.com/redmonkez12/go-auth-otp/internal/http"
	"github.com/redmonkez12/go-auth-otp/internal/logging"
)

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"store", cfg.Store.Driver,
		"token", cfg.Auth.TokenType,
		"mail", cfg.Email.Driver,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Initialize user store
	userRepo, closeStore, err := openUserStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize %s store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()

	// Initialize token service
	tokenService, err := newTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize %s token service: %w", cfg.Auth.TokenType, err)
	}

	// Initialize email service
	emailService := email.NewService(
		newMailSender(cfg.Email, logger),
		cfg.Email.SenderEmail,
		cfg.Auth.VerifyOTPTTL,
		cfg.Auth.ResetOTPTTL,
	)

	// Initialize auth service
	authService := auth.NewService(
		userRepo,
		emailService,
		tokenService,
		logger,
		auth.ServiceConfig{
			BcryptCost:      cfg.Auth.BcryptCost,
			SessionDuration: cfg.Auth.SessionDuration,
			VerifyOTPTTL:    cfg.Auth.VerifyOTPTTL,
			ResetOTPTTL:     cfg.Auth.ResetOTPTTL,
		},
	)

	// Initialize HTTP handlers
	authHandler := auth.NewHandler(authService, cfg.Server.IsProduction())
	authMiddleware := auth.NewMiddleware(tokenService)

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, authMiddleware, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
