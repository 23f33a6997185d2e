package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	JWTSecretKey           string
	AccessTokenTTL         time.Duration
	BcryptCost             int
	TasksFetchLimit        int
	RedisAddr              string
	UserCacheTTL           time.Duration
	LogLevel               string
	LogFormat              string
	ShutdownTimeoutSeconds int
}

// CacheEnabled reports whether a Redis host was configured.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func Load() (Config, error) {
	var errs []error
	getInt := func(key string, defaultVal int) int {
		v, err := getEnvAsInt(key, defaultVal)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		JWTSecretKey:           os.Getenv("JWT_SECRET_KEY"),
		AccessTokenTTL:         time.Duration(getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		BcryptCost:             getInt("BCRYPT_COST", 10),
		TasksFetchLimit:        getInt("TASKS_FETCH_LIMIT", 100),
		UserCacheTTL:           time.Duration(getInt("USER_CACHE_TTL_SECONDS", 300)) * time.Second,
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "text"),
		ShutdownTimeoutSeconds: getInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		cfg.RedisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	errs = append(errs, validate(cfg)...)
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func validate(cfg Config) []error {
	var errs []error
	if cfg.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if cfg.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be set"))
	}
	if cfg.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be greater than 0"))
	}
	if cfg.TasksFetchLimit < 0 {
		errs = append(errs, errors.New("TASKS_FETCH_LIMIT must not be negative"))
	}
	if cfg.CacheEnabled() && cfg.UserCacheTTL <= 0 {
		errs = append(errs, errors.New("USER_CACHE_TTL_SECONDS must be greater than 0"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	return errs
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return defaultVal, fmt.Errorf("invalid integer value for %s: %q", key, v)
		}
		return i, nil
	}
	return defaultVal, nil
}
