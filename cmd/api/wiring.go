package main

import (
	"context"
	"fmt"

	"github.com/redmonkez12/go-auth-otp/internal/auth"
	"github.com/redmonkez12/go-auth-otp/internal/config"
	"github.com/redmonkez12/go-auth-otp/internal/database"
	"github.com/redmonkez12/go-auth-otp/internal/email"
	"github.com/redmonkez12/go-auth-otp/internal/logging"
	"github.com/redmonkez12/go-auth-otp/internal/user"
)

// openUserStore connects the configured account store. The returned func releases it.
func openUserStore(ctx context.Context, cfg *config.Config, logger *logging.Logger) (auth.UserRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, err := database.NewMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.Mongo.DBName).Collection(cfg.Mongo.CollectionName)
		if err := database.EnsureUserIndexes(ctx, coll); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("failed to disconnect mongo", "error", err)
			}
		}
		return user.NewMongoRepository(coll), closeFn, nil

	case config.StorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database.ConnectionString())
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}
		return user.NewRepository(db), closeFn, nil

	case config.StoreMemory:
		logger.Warn("using in-memory user store, accounts are lost on restart")
		return user.NewMemoryRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func newTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenType {
	case config.TokenPaseto:
		return auth.NewPasetoService(cfg.PasetoKey)
	case config.TokenJWT:
		return auth.NewJWTService(cfg.JWTSecret)
	default:
		return nil, fmt.Errorf("unsupported token type %q", cfg.TokenType)
	}
}

func newMailSender(cfg config.EmailConfig, logger *logging.Logger) email.Sender {
	switch cfg.Driver {
	case config.MailHTTP:
		return email.NewHTTPSender(cfg.APIURL, cfg.APIKey, cfg.Timeout)
	case config.MailLog:
		return email.NewLogSender(logger)
	default:
		return email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
}
