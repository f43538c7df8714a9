package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/redmonkez12/go-auth-otp/internal/user"
)

// Store drivers
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Token types
const (
	TokenJWT    = "jwt"
	TokenPaseto = "paseto"
)

// Mail drivers
const (
	MailSMTP = "smtp"
	MailHTTP = "http"
	MailLog  = "log"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Port            string
	Env             string // dev or prod
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustedOrigins  []string // CORS allowed origins for cookie auth
}

type StoreConfig struct {
	Driver string // mongo, postgres or memory
}

type MongoConfig struct {
	URI            string
	DBName         string
	CollectionName string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ChannelBinding string // "require" for Neon DB, empty for local
}

type AuthConfig struct {
	TokenType string // jwt or paseto
	JWTSecret []byte
	// PASETO symmetric key (must be 32 bytes for v4.local)
	PasetoKey       []byte
	SessionDuration time.Duration
	VerifyOTPTTL    time.Duration
	ResetOTPTTL     time.Duration
	BcryptCost      int
}

type EmailConfig struct {
	Driver       string // smtp, http or log
	SenderEmail  string
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	APIURL       string
	APIKey       string
	Timeout      time.Duration
}

// Load reads configuration from environment variables
// A .env file in the working directory is loaded first when present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "4000"),
			Env:             getEnv("APP_ENV", "dev"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			TrustedOrigins:  getSliceEnv("TRUSTED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", StoreMongo),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DBName:         getEnv("MONGO_DB", "mern-auth"),
			CollectionName: getEnv("MONGO_COLLECTION", user.DefaultCollectionName),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "auth"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ChannelBinding: getEnv("DB_CHANNEL_BINDING", ""),
		},
		Auth: AuthConfig{
			TokenType:       getEnv("TOKEN_TYPE", TokenJWT),
			JWTSecret:       []byte(getEnv("JWT_SECRET", "")),
			PasetoKey:       []byte(getEnv("PASETO_KEY", "")),
			SessionDuration: getDurationEnv("SESSION_DURATION", 7*24*time.Hour),
			VerifyOTPTTL:    getDurationEnv("VERIFY_OTP_TTL", 24*time.Hour),
			ResetOTPTTL:     getDurationEnv("RESET_OTP_TTL", 15*time.Minute),
			BcryptCost:      getIntEnv("BCRYPT_COST", 10),
		},
		Email: EmailConfig{
			Driver:       getEnv("MAIL_DRIVER", MailSMTP),
			SenderEmail:  getEnv("SENDER_EMAIL", ""),
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASS", ""),
			APIURL:       getEnv("MAIL_API_URL", ""),
			APIKey:       getEnv("MAIL_API_KEY", ""),
			Timeout:      getDurationEnv("MAIL_TIMEOUT", 10*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks driver names and the key material for the selected token type
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want mongo, postgres or memory)", c.Store.Driver)
	}

	switch c.Auth.TokenType {
	case TokenJWT:
		if len(c.Auth.JWTSecret) == 0 {
			return fmt.Errorf("JWT_SECRET is required when TOKEN_TYPE=jwt")
		}
	case TokenPaseto:
		// Validate PASETO key length (must be 32 bytes for v4.local)
		if len(c.Auth.PasetoKey) != 32 {
			return fmt.Errorf("PASETO_KEY must be exactly 32 bytes, got %d", len(c.Auth.PasetoKey))
		}
	default:
		return fmt.Errorf("unsupported TOKEN_TYPE %q (want jwt or paseto)", c.Auth.TokenType)
	}

	switch c.Email.Driver {
	case MailSMTP:
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required when MAIL_DRIVER=smtp")
		}
	case MailHTTP:
		if c.Email.APIURL == "" {
			return fmt.Errorf("MAIL_API_URL is required when MAIL_DRIVER=http")
		}
	case MailLog:
	default:
		return fmt.Errorf("unsupported MAIL_DRIVER %q (want smtp, http or log)", c.Email.Driver)
	}

	if c.Email.Driver != MailLog && c.Email.SenderEmail == "" {
		return fmt.Errorf("SENDER_EMAIL is required")
	}

	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)

	// Add channel_binding if configured (required for Neon DB)
	if c.ChannelBinding != "" {
		connStr += fmt.Sprintf(" channel_binding=%s", c.ChannelBinding)
	}

	return connStr
}

// IsDevelopment returns true if the environment is set to dev
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

// IsProduction returns true for prod/production; session cookies become cross-site and secure-only
func (c *ServerConfig) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getDurationEnv accepts Go duration strings ("15m") or plain seconds ("900")
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(value); err == nil {
		return d
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Split by comma and trim whitespace
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
