package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"task-manager.com/task-manager/internal/cache"
	config "task-manager.com/task-manager/internal/configs"
	"task-manager.com/task-manager/internal/database"
	httpapi "task-manager.com/task-manager/internal/http"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/security"
	"task-manager.com/task-manager/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task manager HTTP API backed by SQLite",
	RunE: func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
		if envErr != nil {
			logger.Info(".env file not found, using environment variables")
		}

		db, err := config.NewDatabase(cfg.DatabaseDSN, logger)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		sessions := database.NewManager(db, logger)
		hasher := security.NewBcryptHasher(cfg.BcryptCost)
		tokens := security.NewJWTManager(cfg.JWTSecretKey)

		var userCache services.UserCache
		if cfg.CacheEnabled() {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			userCache = cache.NewRedisUserCache(redisClient, cfg.UserCacheTTL, logger)
			logger.Info("user cache enabled", "redis", cfg.RedisAddr)
		}

		authService := services.NewAuthService(
			sessions,
			repository.NewUserRepository(hasher, logger),
			hasher,
			tokens,
			cfg.AccessTokenTTL,
			userCache,
			logger,
		)
		taskService := services.NewTaskService(sessions, repository.NewTaskRepository(logger), logger)

		e := echo.New()
		httpapi.Register(
			e,
			httpapi.NewAuthHandler(authService, logger),
			httpapi.NewTaskHandler(taskService, cfg.TasksFetchLimit, logger),
			authService,
			logger,
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server stopped", "error", err)
				stop()
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(echoCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
