// Package database owns the unit-of-work discipline: one transaction per
// Session, committed or rolled back exactly once, and always closed.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

var (
	// ErrStorageFailure marks any failure of the underlying store.
	ErrStorageFailure  = errors.New("storage failure")
	ErrSessionFinished = errors.New("session transaction already finished")
	ErrSessionClosed   = errors.New("session is closed")
)

type Manager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewManager(db *gorm.DB, logger *slog.Logger) *Manager {
	return &Manager{db: db, logger: logger}
}

// Open begins a transaction bound to ctx. The caller must Close the session.
func (m *Manager) Open(ctx context.Context) (*Session, error) {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		m.logger.Error("failed to begin transaction", "error", tx.Error)
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrStorageFailure, tx.Error)
	}

	m.logger.Debug("database session opened")
	return &Session{tx: tx, logger: m.logger}, nil
}

// Run opens a session, hands it to fn and closes it on every exit path.
// Anything fn did not commit is rolled back.
func (m *Manager) Run(ctx context.Context, fn func(*Session) error) error {
	sess, err := m.Open(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	return fn(sess)
}

type Session struct {
	tx        *gorm.DB
	logger    *slog.Logger
	finished  bool
	committed bool
	closed    bool
}

// DB is the transactional handle queries run on.
func (s *Session) DB() *gorm.DB {
	return s.tx
}

func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.finished {
		return ErrSessionFinished
	}

	if err := s.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.finished = true
	s.committed = true
	return nil
}

// Rollback is safe to call after a failed Commit.
func (s *Session) Rollback() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.finished {
		return nil
	}
	s.finished = true

	// A cancelled context or failed commit has already ended the transaction.
	err := s.tx.Rollback().Error
	if err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, gorm.ErrInvalidTransaction) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	var err error
	if !s.finished {
		err = s.Rollback()
	}
	s.closed = true

	if err != nil {
		s.logger.Warn("database session closed with rollback error", "error", err)
	} else {
		s.logger.Debug("database session closed")
	}
	return err
}

func (s *Session) Committed() bool {
	return s.committed
}
