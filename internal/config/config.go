package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fonoteca/internal/domain"
)

const (
	DefaultAPIURL      = "http://localhost:8000"
	DefaultPageSize    = 10
	DefaultSearchLimit = domain.DefaultSearchLimit
	DefaultTimeout     = 30 * time.Second
	DefaultRetryMax    = 2
	DefaultLogLevel    = "info"

	BackendHTTP   = "http"
	BackendSQLite = "sqlite"
)

// Config holds the settings shared by every fonoteca binary
type Config struct {
	APIURL      string        `yaml:"api_url"`
	Backend     string        `yaml:"backend"`
	DBPath      string        `yaml:"db_path"`
	MediaDir    string        `yaml:"media_dir"`
	PageSize    int           `yaml:"page_size"`
	SearchLimit int           `yaml:"search_limit"`
	Timeout     time.Duration `yaml:"timeout"`
	RetryMax    int           `yaml:"retry_max"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
	Player      string        `yaml:"player"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		APIURL:      DefaultAPIURL,
		Backend:     BackendHTTP,
		DBPath:      DefaultDBPath(),
		MediaDir:    DefaultMediaDir(),
		PageSize:    DefaultPageSize,
		SearchLimit: DefaultSearchLimit,
		Timeout:     DefaultTimeout,
		RetryMax:    DefaultRetryMax,
		LogLevel:    DefaultLogLevel,
	}
}

// Load builds the configuration from defaults, then the YAML file at path,
// then FONOTECA_* environment variables. An empty path uses DefaultPath;
// a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.MediaDir = expandHome(cfg.MediaDir)
	cfg.LogFile = expandHome(cfg.LogFile)

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := APIURL(); v != "" {
		c.APIURL = v
	}
	if v := Backend(); v != "" {
		c.Backend = v
	}
	if v := DBPath(); v != "" {
		c.DBPath = v
	}
	if v := MediaDir(); v != "" {
		c.MediaDir = v
	}
	if v := LogLevel(); v != "" {
		c.LogLevel = v
	}
	if v := LogFile(); v != "" {
		c.LogFile = v
	}
	if v := Player(); v != "" {
		c.Player = v
	}
	if v := strings.TrimSpace(os.Getenv("FONOTECA_PAGE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &domain.ValidationError{Field: "page_size", Message: fmt.Sprintf("FONOTECA_PAGE_SIZE is not a number: %q", v)}
		}
		c.PageSize = n
	}
	return nil
}

// Validate checks the configuration for unusable values
func (c Config) Validate() error {
	switch c.Backend {
	case BackendHTTP:
		if strings.TrimSpace(c.APIURL) == "" {
			return &domain.ValidationError{Field: "api_url", Message: "api_url is required for the http backend"}
		}
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return &domain.ValidationError{Field: "db_path", Message: "db_path is required for the sqlite backend"}
		}
	default:
		return &domain.ValidationError{
			Field:   "backend",
			Message: fmt.Sprintf("unknown backend %q (expected %s or %s)", c.Backend, BackendHTTP, BackendSQLite),
		}
	}
	if c.PageSize <= 0 {
		return &domain.ValidationError{Field: "page_size", Message: "page_size must be positive"}
	}
	if c.SearchLimit <= 0 {
		return &domain.ValidationError{Field: "search_limit", Message: "search_limit must be positive"}
	}
	if c.RetryMax < 0 {
		return &domain.ValidationError{Field: "retry_max", Message: "retry_max cannot be negative"}
	}
	if c.Timeout <= 0 {
		return &domain.ValidationError{Field: "timeout", Message: "timeout must be positive"}
	}
	return nil
}

// APIURL returns the remote catalog URL from FONOTECA_API_URL
func APIURL() string {
	return strings.TrimRight(strings.TrimSpace(os.Getenv("FONOTECA_API_URL")), "/")
}

// Backend returns the backend name from FONOTECA_BACKEND
func Backend() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv("FONOTECA_BACKEND")))
}

// DBPath returns the SQLite database path from FONOTECA_DB
func DBPath() string {
	return strings.TrimSpace(os.Getenv("FONOTECA_DB"))
}

// MediaDir returns the media directory from FONOTECA_MEDIA_DIR
func MediaDir() string {
	return strings.TrimSpace(os.Getenv("FONOTECA_MEDIA_DIR"))
}

// LogLevel returns the log level from FONOTECA_LOG_LEVEL
func LogLevel() string {
	return strings.TrimSpace(os.Getenv("FONOTECA_LOG_LEVEL"))
}

// LogFile returns the log file path from FONOTECA_LOG_FILE
func LogFile() string {
	return strings.TrimSpace(os.Getenv("FONOTECA_LOG_FILE"))
}

// Player returns the preview command from FONOTECA_PLAYER
func Player() string {
	return strings.TrimSpace(os.Getenv("FONOTECA_PLAYER"))
}

// DefaultPath returns $XDG_CONFIG_HOME/fonoteca/config.yaml, or "" when no
// config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fonoteca", "config.yaml")
}

// DefaultDBPath returns the default location of the local database
func DefaultDBPath() string {
	return filepath.Join(dataDir(), "fonoteca.db")
}

// DefaultMediaDir returns the default directory for locally stored audio
func DefaultMediaDir() string {
	return filepath.Join(dataDir(), "media")
}

// DefaultLogFile returns the log file the TUI writes to when none is configured
func DefaultLogFile() string {
	return filepath.Join(stateDir(), "fonoteca.log")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "fonoteca")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "fonoteca")
	}
	return "fonoteca"
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "fonoteca")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "fonoteca")
	}
	return os.TempDir()
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
