package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/redmonkez12/go-auth-otp/docs" // Swagger docs
)

// @title           Auth OTP API
// @version         1.0
// @description     Account registration, cookie sessions, email verification and password reset with one-time codes.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:4000
// @BasePath  /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Session token set by login or register.

func main() {
	rootCmd := &cobra.Command{
		Use:          "auth-api",
		Short:        "Authentication backend with email OTP verification",
		SilenceUsage: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the users table or collection indexes for the configured store",
		RunE:  runMigrate,
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)

	// Allow running without subcommand (default to serve)
	rootCmd.RunE = serveCmd.RunE

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
