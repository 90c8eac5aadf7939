package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Spreadsheet SpreadsheetConfig
	API         APIConfig
	State       StateConfig
	Sync        SyncConfig
}

// SpreadsheetConfig identifies the Google Sheets document the engines write to.
type SpreadsheetConfig struct {
	ID              string `mapstructure:"id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// APIConfig holds the remote endpoints.
type APIConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TaxonomyURL string `mapstructure:"taxonomy_url"`
}

// StateConfig holds the path of the local property store.
type StateConfig struct {
	Path string `mapstructure:"path"`
}

// SyncConfig holds scheduling settings.
type SyncConfig struct {
	Hour     int    `mapstructure:"hour"`
	Timezone string `mapstructure:"timezone"`
}

// Load reads configuration from file and env. Env var overrides use prefix CENTSYNC_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("spreadsheet.id", "")
	v.SetDefault("spreadsheet.credentials_file", filepath.Join(os.Getenv("HOME"), ".config", "centsync", "credentials.json"))
	v.SetDefault("api.base_url", "https://api.cent.nz/v1")
	v.SetDefault("api.taxonomy_url", "https://nzfcc.org/downloads/categories.json")
	v.SetDefault("state.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "centsync", "state.json"))
	v.SetDefault("sync.hour", 1)
	v.SetDefault("sync.timezone", "Pacific/Auckland")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CENTSYNC_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "centsync"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CENTSYNC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Sync.Hour < 0 || c.Sync.Hour > 23 {
		return Config{}, fmt.Errorf("sync.hour must be between 0 and 23, got %d", c.Sync.Hour)
	}
	return c, nil
}
