package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultEnvFile = ".env"

// Load applies the first env file it finds, then reads the process environment
// into App. Each name is looked up in the working directory and its parents; with
// no names it looks for .env. Variables already set in the environment win over
// the file. A missing file is not an error.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()
	if len(envFiles) == 0 {
		envFiles = []string{defaultEnvFile}
	}

	for _, name := range envFiles {
		path, err := findEnvFile(name)
		if err != nil {
			logger.Debug("Env file not found", "name", name, "error", err)
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, err
		}
		logger.Info("Loaded env file", "path", path)
		break
	}
	return loadFromEnv()
}

// findEnvFile returns the nearest file called name, starting in the working
// directory and walking up to the filesystem root. Absolute names are used as is.
func findEnvFile(name string) (string, error) {
	if name == "" {
		name = defaultEnvFile
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"db_driver", cfg.DB.Driver,
		"db", maskValue(cfg.DB.Url),
		"redis", maskValue(cfg.Redis.URL),
		"redis_lock_ttl", cfg.Redis.LockTTL,
		"engine_store_timeout", cfg.Engine.StoreTimeout,
		"engine_max_retries", cfg.Engine.MaxRetries,
		"engine_reject_self_transfer", cfg.Engine.RejectSelfTransfer,
		"rate_limit", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

// maskValue hides connection strings in logs, keeping the scheme start and the tail.
func maskValue(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 6 {
		return "****"
	}
	return v[:2] + "****" + v[len(v)-4:]
}
