package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-manager.com/task-manager/internal/database"
	model "task-manager.com/task-manager/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) (*gorm.DB, *database.Manager) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tasks.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Task{}, &model.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db, database.NewManager(db, discardLogger())
}

// stepClock advances by step on every reading.
type stepClock struct {
	current time.Time
	step    time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{
		current: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		step:    time.Second,
	}
}

func (c *stepClock) Now() time.Time {
	c.current = c.current.Add(c.step)
	return c.current
}

func openSession(t *testing.T, manager *database.Manager) *database.Session {
	t.Helper()

	sess, err := manager.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func ptr[T any](v T) *T {
	return &v
}
