package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Backend BackendConfig
	Session SessionConfig
	Logger  LoggerConfig
}

type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

type SessionConfig struct {
	DBPath string
}

type LoggerConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment, after loading envFiles
// (".env" when none are given). Missing env files are ignored; variables
// already set in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()

	// Defaults
	v.SetDefault("BACKEND_URL", "http://localhost:8001")
	v.SetDefault("BACKEND_TIMEOUT", "30s")
	v.SetDefault("SESSION_DB_PATH", defaultSessionPath())
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "text")

	// Env
	v.AutomaticEnv()

	timeout, err := time.ParseDuration(v.GetString("BACKEND_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	cfg := &Config{
		Backend: BackendConfig{
			URL:     strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
			Timeout: timeout,
		},
		Session: SessionConfig{
			DBPath: expandHome(v.GetString("SESSION_DB_PATH")),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

func defaultSessionPath() string {
	return filepath.Join("~", ".printshop", "session.db")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
