// Package config loads runtime settings and the user's display preferences.
//
// Settings come from SHINSI_* environment variables, an optional
// config.yaml in the config directory, and built-in defaults, in that order
// of precedence. Display preferences are toggled from the UI and persisted
// separately in preferences.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultThumbnailWidth = 200
	DefaultBaseURL        = "https://e-hentai.org"
	DefaultAPIURL         = "https://api.e-hentai.org/api.php"
)

type (
	Config struct {
		Dir string // directory holding config.yaml and preferences.yaml

		Database
		Downloads
		Source
		Images
	}

	Database struct {
		Path string
	}
	Downloads struct {
		Dir         string
		Concurrency int
	}
	Source struct {
		BaseURL string
		APIURL  string
	}
	Images struct {
		ThumbnailWidth int
	}
)

// DefaultDir returns ~/.shinsi, or .shinsi when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shinsi"
	}
	return filepath.Join(home, ".shinsi")
}

// Load reads the configuration rooted at dir. An empty dir means DefaultDir.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultDir()
	}

	v := viper.New()
	v.SetEnvPrefix("shinsi")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", filepath.Join(dir, "shinsi.db"))
	v.SetDefault("downloads.dir", filepath.Join(dir, "downloads"))
	v.SetDefault("downloads.concurrency", 3)
	v.SetDefault("source.base_url", DefaultBaseURL)
	v.SetDefault("source.api_url", DefaultAPIURL)
	v.SetDefault("images.thumbnail_width", DefaultThumbnailWidth)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Dir: dir,
		Database: Database{
			Path: v.GetString("database.path"),
		},
		Downloads: Downloads{
			Dir:         v.GetString("downloads.dir"),
			Concurrency: v.GetInt("downloads.concurrency"),
		},
		Source: Source{
			BaseURL: strings.TrimSuffix(v.GetString("source.base_url"), "/"),
			APIURL:  v.GetString("source.api_url"),
		},
		Images: Images{
			ThumbnailWidth: v.GetInt("images.thumbnail_width"),
		},
	}

	if cfg.Downloads.Concurrency < 1 {
		cfg.Downloads.Concurrency = 1
	}
	if cfg.Images.ThumbnailWidth < 1 {
		cfg.Images.ThumbnailWidth = DefaultThumbnailWidth
	}

	return cfg, nil
}

// PreferencesPath is where display preferences for cfg are stored.
func (c *Config) PreferencesPath() string {
	return filepath.Join(c.Dir, "preferences.yaml")
}
