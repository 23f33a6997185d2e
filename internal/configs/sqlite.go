package config

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-manager.com/task-manager/internal/models"
)

// NewDatabase opens the SQLite store and creates the tasks and users tables.
func NewDatabase(dsn string, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	if err := db.AutoMigrate(&model.Task{}, &model.User{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.Info("database ready", "dsn", dsn)
	return db, nil
}
