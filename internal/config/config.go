package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Storage StorageConfig `mapstructure:"storage"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds metadata API configuration
type TMDBConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	Token             string  `mapstructure:"token"` // v4 read access token, sent as Bearer
	Language          string  `mapstructure:"language"`
	ImageBaseURL      string  `mapstructure:"image_base_url"`    // posters
	BackdropBaseURL   string  `mapstructure:"backdrop_base_url"` // hero/detail backgrounds
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// StorageConfig holds durable local storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // bbolt file; empty keeps state in memory
}

// CacheConfig holds request cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme              string        `mapstructure:"theme"`
	Debounce           time.Duration `mapstructure:"debounce"`
	NoticeDuration     time.Duration `mapstructure:"notice_duration"`
	InitialNewReleases int           `mapstructure:"initial_new_releases"`
	NewReleaseStep     int           `mapstructure:"new_release_step"`
	Browser            string        `mapstructure:"browser"` // empty for system default
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			Language:          "en-US",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			BackdropBaseURL:   "https://image.tmdb.org/t/p/original",
			RequestsPerSecond: 20,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "marquee.db"),
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		UI: UIConfig{
			Theme:              "default",
			Debounce:           400 * time.Millisecond,
			NoticeDuration:     2 * time.Second,
			InitialNewReleases: 15,
			NewReleaseStep:     10,
		},
		Logging: LoggingConfig{
			File:   filepath.Join(defaultDataPath(), "marquee.log"),
			Level:  "INFO",
			Format: "json",
		},
	}
}

// defaultDataPath returns the directory for the database and log file
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Environment variable overrides, e.g. MARQUEE_TMDB_TOKEN
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about
	defaults := DefaultConfig()
	v.SetDefault("tmdb.base_url", defaults.TMDB.BaseURL)
	v.SetDefault("tmdb.token", defaults.TMDB.Token)
	v.SetDefault("tmdb.language", defaults.TMDB.Language)
	v.SetDefault("tmdb.image_base_url", defaults.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.backdrop_base_url", defaults.TMDB.BackdropBaseURL)
	v.SetDefault("tmdb.requests_per_second", defaults.TMDB.RequestsPerSecond)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("ui.theme", defaults.UI.Theme)
	v.SetDefault("ui.debounce", defaults.UI.Debounce)
	v.SetDefault("ui.notice_duration", defaults.UI.NoticeDuration)
	v.SetDefault("ui.initial_new_releases", defaults.UI.InitialNewReleases)
	v.SetDefault("ui.new_release_step", defaults.UI.NewReleaseStep)
	v.SetDefault("ui.browser", defaults.UI.Browser)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	return v
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Config file not found is OK, use defaults
		case path != "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	return cfg, nil
}

// SaveConfig writes cfg to path, or to the default location when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.token", cfg.TMDB.Token)
	v.Set("tmdb.language", cfg.TMDB.Language)
	v.Set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.Set("tmdb.backdrop_base_url", cfg.TMDB.BackdropBaseURL)
	v.Set("tmdb.requests_per_second", cfg.TMDB.RequestsPerSecond)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("cache.ttl", cfg.Cache.TTL.String())
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.debounce", cfg.UI.Debounce.String())
	v.Set("ui.notice_duration", cfg.UI.NoticeDuration.String())
	v.Set("ui.initial_new_releases", cfg.UI.InitialNewReleases)
	v.Set("ui.new_release_step", cfg.UI.NewReleaseStep)
	v.Set("ui.browser", cfg.UI.Browser)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if an API token is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.TMDB.Token) != ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
