//go:build testutil
// +build testutil

package testdb

import (
	"context"
	"errors"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/bootstrap"
	"infuct.com/seguimiento/pkg/database"
)

type DBHandle struct {
	DB     *gorm.DB
	cancel func()
	stop   func(context.Context) error
}

func (h *DBHandle) Close() {
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

// Start runs a throwaway postgres container and migrates every entity into it.
func Start(ctx context.Context) (*DBHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("seguimiento"),
		postgres.WithUsername("seguimiento"),
		postgres.WithPassword("seguimiento"),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	fail := func(err error) (*DBHandle, error) {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail(err)
	}

	db, err := waitReady(ctx, uri)
	if err != nil {
		return fail(err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		return fail(err)
	}

	return &DBHandle{
		DB:     db,
		cancel: cancel,
		stop:   pg.Terminate,
	}, nil
}

func waitReady(ctx context.Context, uri string) (*gorm.DB, error) {
	dead := time.Now().Add(20 * time.Second)
	for time.Now().Before(dead) {
		db, err := database.Open(uri, false)
		if err == nil {
			sqlDB, err := db.DB()
			if err == nil && sqlDB.PingContext(ctx) == nil {
				return db, nil
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	return nil, errors.New("db not ready")
}

// Reset empties every table between tests.
func (h *DBHandle) Reset() error {
	return h.DB.Exec(`TRUNCATE professor_participations, internships, projects, professors, students, secretaries RESTART IDENTITY CASCADE`).Error
}
