package repository

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"task-manager.com/task-manager/internal/database"
	model "task-manager.com/task-manager/internal/models"
	"task-manager.com/task-manager/internal/security"
)

func newUserRepository() (*UserRepository, *security.BcryptHasher) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	return NewUserRepository(hasher, discardLogger()), hasher
}

func TestUserRepository_CreateHashesPassword(t *testing.T) {
	_, manager := setupTestDB(t)
	repo, hasher := newUserRepository()

	sess := openSession(t, manager)
	user, err := repo.Create(sess, "alice", "s3cret!")
	require.NoError(t, err)
	assert.True(t, sess.Committed())

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "s3cret!", user.HashedPassword)
	assert.True(t, hasher.Verify("s3cret!", user.HashedPassword))
}

func TestUserRepository_FindByUsername(t *testing.T) {
	_, manager := setupTestDB(t)
	repo, _ := newUserRepository()

	var created *model.User
	require.NoError(t, manager.Run(context.Background(), func(sess *database.Session) error {
		var err error
		created, err = repo.Create(sess, "bob", "hunter22")
		return err
	}))

	sess := openSession(t, manager)
	found, err := repo.FindByUsername(sess, "bob")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.HashedPassword, found.HashedPassword)

	_, err = repo.FindByUsername(sess, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db, manager := setupTestDB(t)
	repo, _ := newUserRepository()
	ctx := context.Background()

	require.NoError(t, manager.Run(ctx, func(sess *database.Session) error {
		_, err := repo.Create(sess, "carol", "password1")
		return err
	}))

	var committed bool
	err := manager.Run(ctx, func(sess *database.Session) error {
		_, err := repo.Create(sess, "carol", "password2")
		committed = sess.Committed()
		return err
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.False(t, committed)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Where("username = ?", "carol").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// racingHasher inserts a user with the same name between the existence
// check and the insert, the way a concurrent registration would.
type racingHasher struct {
	security.PasswordHasher
	sess     *database.Session
	username string
}

func (h *racingHasher) Hash(password string) (string, error) {
	if err := h.sess.DB().Create(&model.User{ID: "racer", Username: h.username, HashedPassword: "x"}).Error; err != nil {
		return "", err
	}
	return h.PasswordHasher.Hash(password)
}

func TestUserRepository_UniqueIndexCatchesRace(t *testing.T) {
	_, manager := setupTestDB(t)

	sess := openSession(t, manager)
	hasher := &racingHasher{
		PasswordHasher: security.NewBcryptHasher(bcrypt.MinCost),
		sess:           sess,
		username:       "dave",
	}
	repo := NewUserRepository(hasher, discardLogger())

	_, err := repo.Create(sess, "dave", "password")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.False(t, sess.Committed())
}

func TestUserRepository_DuplicateKeyLogsRollbackFailure(t *testing.T) {
	db, manager := setupTestDB(t)

	var sess *database.Session
	// Ending the session right after the failed insert makes the rollback fail.
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:end_session", func(tx *gorm.DB) {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			_ = sess.Close()
		}
	}))

	sess = openSession(t, manager)
	var logs bytes.Buffer
	hasher := &racingHasher{
		PasswordHasher: security.NewBcryptHasher(bcrypt.MinCost),
		sess:           sess,
		username:       "gina",
	}
	repo := NewUserRepository(hasher, slog.New(slog.NewTextHandler(&logs, nil)))

	_, err := repo.Create(sess, "gina", "password")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Contains(t, logs.String(), "rollback failed")
	assert.Contains(t, logs.String(), database.ErrSessionClosed.Error())
}

func TestUserRepository_PasswordTooLong(t *testing.T) {
	_, manager := setupTestDB(t)
	repo, _ := newUserRepository()

	sess := openSession(t, manager)
	_, err := repo.Create(sess, "erin", strings.Repeat("x", 80))
	assert.ErrorIs(t, err, security.ErrPasswordTooLong)
	assert.False(t, sess.Committed())
}

func TestUserRepository_StorageFailure(t *testing.T) {
	db, manager := setupTestDB(t)
	repo, _ := newUserRepository()
	require.NoError(t, db.Migrator().DropTable(&model.User{}))

	sess := openSession(t, manager)
	_, err := repo.FindByUsername(sess, "frank")
	assert.ErrorIs(t, err, ErrStorageFailure)

	_, err = repo.Create(sess, "frank", "password")
	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.False(t, sess.Committed())
}
