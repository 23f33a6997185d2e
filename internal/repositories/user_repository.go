package repository

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-manager.com/task-manager/internal/database"
	model "task-manager.com/task-manager/internal/models"
	"task-manager.com/task-manager/internal/security"
)

type UserRepository struct {
	hasher security.PasswordHasher
	logger *slog.Logger
}

func NewUserRepository(hasher security.PasswordHasher, logger *slog.Logger) *UserRepository {
	return &UserRepository{hasher: hasher, logger: logger}
}

func (r *UserRepository) FindByUsername(sess *database.Session, username string) (*model.User, error) {
	r.logger.Info("fetching user", "username", username)

	var user model.User
	err := sess.DB().First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("failed to fetch user", "username", username, "error", err)
		return nil, storageFailure("find user", err)
	}

	return &user, nil
}

// Create stores a new user with a hashed password. The plaintext never
// reaches the store.
func (r *UserRepository) Create(sess *database.Session, username, password string) (*model.User, error) {
	_, err := r.FindByUsername(sess, username)
	switch {
	case err == nil:
		r.logger.Warn("user already exists", "username", username)
		return nil, ErrDuplicateUsername
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	hashed, err := r.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       username,
		HashedPassword: hashed,
	}

	if err := sess.DB().Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if rbErr := sess.Rollback(); rbErr != nil {
				r.logger.Error("rollback failed", "op", "create user", "error", rbErr)
			}
			r.logger.Warn("user already exists", "username", username)
			return nil, ErrDuplicateUsername
		}
		return nil, rollback(sess, r.logger, "create user", err)
	}
	if err := sess.Commit(); err != nil {
		return nil, rollback(sess, r.logger, "create user", err)
	}

	r.logger.Info("user created", "username", username)
	return user, nil
}
