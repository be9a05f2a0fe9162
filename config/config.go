package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	minJobTimeout     = time.Minute
	minReaperInterval = time.Minute
)

type Config struct {
	Port            int    `env:"PORT"               envDefault:"5000"`
	APISecretRoot   string `env:"API_SECRET_ROOT,required"`
	MaxUploadSizeMB int    `env:"MAX_UPLOAD_SIZE_MB" envDefault:"500"`
	DataDir         string `env:"DATA_DIR"           envDefault:"/data"`
	// FilesDir defaults to DATA_DIR/files when unset.
	FilesDir   string `env:"FILES_DIR"`
	FFmpegPath string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info"`
	// BehindProxy trusts X-Forwarded-For when rate limiting key issuance.
	BehindProxy bool `env:"BEHIND_PROXY" envDefault:"false"`

	Jobs   JobsConfig
	Reaper ReaperConfig `envPrefix:"REAPER_"`
}

type JobsConfig struct {
	// Timeout bounds a single job execution. Zero is not allowed.
	Timeout time.Duration `env:"JOB_TIMEOUT"   envDefault:"2h"`
	// Retention is added to the terminal time to compute ExpiresAt.
	Retention time.Duration `env:"JOB_RETENTION" envDefault:"48h"`
}

type ReaperConfig struct {
	Interval     time.Duration `env:"INTERVAL"       envDefault:"24h"`
	OrphanMaxAge time.Duration `env:"ORPHAN_MAX_AGE" envDefault:"48h"`
}

// Load reads an optional .env file, parses the environment and applies Sanitize.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Sanitize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Sanitize fills derived defaults and rejects values the service cannot run with.
func (c *Config) Sanitize() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if strings.TrimSpace(c.APISecretRoot) == "" {
		return errors.New("API_SECRET_ROOT is required")
	}
	if c.MaxUploadSizeMB <= 0 {
		c.MaxUploadSizeMB = 500
	}
	if c.FilesDir == "" {
		c.FilesDir = filepath.Join(c.DataDir, "files")
	}
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %q", c.LogLevel)
	}

	if c.Jobs.Timeout < minJobTimeout {
		c.Jobs.Timeout = minJobTimeout
	}
	if c.Jobs.Retention <= 0 {
		c.Jobs.Retention = 48 * time.Hour
	}
	if c.Reaper.Interval < minReaperInterval {
		c.Reaper.Interval = minReaperInterval
	}
	if c.Reaper.OrphanMaxAge <= 0 {
		c.Reaper.OrphanMaxAge = 48 * time.Hour
	}
	return nil
}

// DatabasePath is the SQLite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "vcomp.db")
}
