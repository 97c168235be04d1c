package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	Debug    bool
}

func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, sslMode,
	)
}

// Connect opens a connection pool. The returned handle is meant to be passed
// to repositories explicitly.
func Connect(cfg Config) (*gorm.DB, error) {
	return Open(cfg.DSN(), cfg.Debug)
}

// Open connects using a raw DSN or URL. Driver errors are translated to gorm
// sentinel errors (duplicated key, foreign key violation).
func Open(dsn string, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
