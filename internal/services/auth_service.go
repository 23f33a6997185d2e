package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"task-manager.com/task-manager/internal/database"
	model "task-manager.com/task-manager/internal/models"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/security"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell which check failed.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthenticated    = errors.New("invalid authentication credentials")
)

// UserCache is an optional read-through store for ResolveCurrentUser.
type UserCache interface {
	Get(ctx context.Context, username string) (*model.User, bool)
	Set(ctx context.Context, user *model.User)
}

type AuthService struct {
	sessions *database.Manager
	users    *repository.UserRepository
	hasher   security.PasswordHasher
	tokens   security.TokenManager
	tokenTTL time.Duration
	cache    UserCache
	logger   *slog.Logger

	loads singleflight.Group
}

func NewAuthService(
	sessions *database.Manager,
	users *repository.UserRepository,
	hasher security.PasswordHasher,
	tokens security.TokenManager,
	tokenTTL time.Duration,
	cache UserCache,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		sessions: sessions,
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		cache:    cache,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	s.logger.Info("registration attempt", "username", username)

	var user *model.User
	err := s.sessions.Run(ctx, func(sess *database.Session) error {
		_, err := s.users.FindByUsername(sess, username)
		switch {
		case err == nil:
			return repository.ErrDuplicateUsername
		case !errors.Is(err, repository.ErrUserNotFound):
			return err
		}

		user, err = s.users.Create(sess, username, password)
		return err
	})
	if err != nil {
		s.logger.Warn("registration failed", "username", username, "error", err)
		return nil, err
	}

	s.logger.Info("user registered", "username", username)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	s.logger.Info("login attempt", "username", username)

	var user *model.User
	err := s.sessions.Run(ctx, func(sess *database.Session) error {
		var err error
		user, err = s.users.FindByUsername(sess, username)
		return err
	})
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return "", err
	}

	if user == nil || !s.hasher.Verify(password, user.HashedPassword) {
		s.logger.Warn("login failed", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return "", err
	}

	s.logger.Info("login successful", "username", username)
	return token, nil
}

// ResolveCurrentUser maps every token or lookup problem to ErrUnauthenticated,
// except storage failures, which are reported as they are.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (*model.User, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			s.logger.Info("rejected expired token")
		} else {
			s.logger.Warn("rejected invalid token", "error", err)
		}
		return nil, ErrUnauthenticated
	}

	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, username); ok {
			return user, nil
		}
	}

	// Concurrent misses for the same subject share one lookup. The lookup is
	// detached from any single caller; each caller stops waiting on its own ctx.
	lookupCtx := context.WithoutCancel(ctx)
	ch := s.loads.DoChan(username, func() (any, error) {
		var user *model.User
		err := s.sessions.Run(lookupCtx, func(sess *database.Session) error {
			var err error
			user, err = s.users.FindByUsername(sess, username)
			return err
		})
		return user, err
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}

	if err := res.Err; err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("token subject does not exist", "username", username)
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	user := res.Val.(*model.User)
	if s.cache != nil {
		s.cache.Set(ctx, user)
	}
	return user, nil
}
