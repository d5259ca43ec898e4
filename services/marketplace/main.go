package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seller-marketplace/services/marketplace/server"
	"seller-marketplace/shared/config"
	"seller-marketplace/shared/database"
	"seller-marketplace/shared/logger"
	"seller-marketplace/shared/redis"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/store/mongostore"
	"seller-marketplace/shared/store/sqlstore"

	"github.com/rs/zerolog"
)

// Categories seeded into empty SQL databases.
var defaultCategories = []string{"Mobile Phones", "Laptops", "Cameras"}

// @title Seller BD API
// @version 1.0
// @description Second-hand marketplace backend for buyers, sellers and admins
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg := config.LoadConfig()
	log := logger.New(cfg.Server.Env)

	ctx := context.Background()

	// Connect to database
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to open store")
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("store connected")

	// Connect to Redis
	cache, err := redis.Connect(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, serving without cache")
	} else if cache != nil {
		log.Info().Msg("redis connected")
	}

	app := server.New(server.Deps{
		Config: cfg,
		Store:  st,
		Cache:  cache,
		Log:    log,
	})

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Info().Str("addr", addr).Msg("Seller BD server starting")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := cache.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("store close")
	}
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		indexCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
		defer cancel()
		if err := database.EnsureIndexes(indexCtx, client.Database(cfg.Database.Name)); err != nil {
			// Existing duplicates block the unique indexes; the handlers still
			// check before inserting.
			log.Warn().Err(err).Msg("index creation failed")
		}
		return mongostore.New(client, cfg.Database.Name), nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.ConnectSQL(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.Driver == config.DriverSQLite {
			if err := database.SeedCategories(db, defaultCategories...); err != nil {
				return nil, err
			}
		}
		return sqlstore.New(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver)
	}
}
