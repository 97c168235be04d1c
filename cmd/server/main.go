package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"infuct.com/seguimiento/internal/bootstrap"
	"infuct.com/seguimiento/internal/config"
	"infuct.com/seguimiento/internal/server"
	"infuct.com/seguimiento/pkg/database"
	"infuct.com/seguimiento/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("database connected")

	if err := bootstrap.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	if cfg.IsDevelopment() {
		if err := bootstrap.SeedStudents(db); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed students")
		}
		if err := bootstrap.SeedSecretary(db, cfg.SeedSecretaryEmail, cfg.SeedSecretaryPassword); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed secretary")
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		redisClient = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, login throttling will fail open")
		}
		cancel()
	} else {
		logger.Warn().Msg("REDIS_URL not set, login throttling disabled")
	}

	srv, err := server.NewServer(cfg, db, redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build server")
	}

	logger.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server starting")
	if err := srv.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}
