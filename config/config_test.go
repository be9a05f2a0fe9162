package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_SECRET_ROOT", "root-secret")
	t.Setenv("DATA_DIR", "/srv/vcomp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "root-secret", cfg.APISecretRoot)
	assert.Equal(t, 500, cfg.MaxUploadSizeMB)
	assert.Equal(t, filepath.Join("/srv/vcomp", "files"), cfg.FilesDir)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.BehindProxy)
	assert.Equal(t, 2*time.Hour, cfg.Jobs.Timeout)
	assert.Equal(t, 48*time.Hour, cfg.Jobs.Retention)
	assert.Equal(t, 24*time.Hour, cfg.Reaper.Interval)
	assert.Equal(t, 48*time.Hour, cfg.Reaper.OrphanMaxAge)
	assert.Equal(t, filepath.Join("/srv/vcomp", "vcomp.db"), cfg.DatabasePath())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_SECRET_ROOT", "root-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("FILES_DIR", "/tmp/artifacts")
	t.Setenv("JOB_TIMEOUT", "30m")
	t.Setenv("REAPER_INTERVAL", "1h")
	t.Setenv("REAPER_ORPHAN_MAX_AGE", "72h")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("BEHIND_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/tmp/artifacts", cfg.FilesDir)
	assert.Equal(t, 30*time.Minute, cfg.Jobs.Timeout)
	assert.Equal(t, time.Hour, cfg.Reaper.Interval)
	assert.Equal(t, 72*time.Hour, cfg.Reaper.OrphanMaxAge)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.BehindProxy)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_SECRET_ROOT", "")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		check   func(t *testing.T, c Config)
	}{
		{
			name:    "invalid port",
			cfg:     Config{Port: 70000, APISecretRoot: "x", LogLevel: "info"},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			cfg:     Config{Port: 5000, APISecretRoot: "x", LogLevel: "verbose"},
			wantErr: true,
		},
		{
			name: "clamps short durations",
			cfg: Config{
				Port:          5000,
				APISecretRoot: "x",
				LogLevel:      "warn",
				Jobs:          JobsConfig{Timeout: time.Second},
				Reaper:        ReaperConfig{Interval: time.Millisecond},
			},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, minJobTimeout, c.Jobs.Timeout)
				assert.Equal(t, 48*time.Hour, c.Jobs.Retention)
				assert.Equal(t, minReaperInterval, c.Reaper.Interval)
				assert.Equal(t, 48*time.Hour, c.Reaper.OrphanMaxAge)
				assert.Equal(t, 500, c.MaxUploadSizeMB)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Sanitize()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, tt.cfg)
			}
		})
	}
}
