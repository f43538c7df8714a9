package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/go-auth-otp/internal/config"
	"github.com/redmonkez12/go-auth-otp/internal/database"
	"github.com/redmonkez12/go-auth-otp/internal/logging"
)

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database.ConnectionString())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.CreateSchema(ctx, db); err != nil {
			return err
		}
		logger.Info("users table ready", "database", cfg.Database.DBName)

	case config.StoreMongo:
		client, err := database.NewMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		coll := client.Database(cfg.Mongo.DBName).Collection(cfg.Mongo.CollectionName)
		if err := database.EnsureUserIndexes(ctx, coll); err != nil {
			return err
		}
		logger.Info("users collection indexes ready", "collection", cfg.Mongo.CollectionName)

	default:
		logger.Info("nothing to migrate", "store", cfg.Store.Driver)
	}

	return nil
}
