// Package config resolves folio settings from an optional config file and
// FOLIO_* environment variables. Command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Content is an optional YAML/JSON file that replaces parts of the built-in page.
	Content string `mapstructure:"content"`
	// DataDir holds the contact inbox and the default log file.
	DataDir string `mapstructure:"data_dir"`
	LogFile string `mapstructure:"log_file"`
	Verbose bool   `mapstructure:"verbose"`

	TUI    TUIConfig    `mapstructure:"tui"`
	Web    ServerConfig `mapstructure:"web"`
	WebTUI ServerConfig `mapstructure:"webtui"`
}

type TUIConfig struct {
	Theme  string `mapstructure:"theme"`  // light|dark|auto
	Glyphs string `mapstructure:"glyphs"` // unicode|ascii
	Mouse  bool   `mapstructure:"mouse"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration. An explicit path must exist; otherwise
// $FOLIO_CONFIG or ~/.config/folio/config.yaml is used when present.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("content", "")
	v.SetDefault("data_dir", "")
	v.SetDefault("log_file", "")
	v.SetDefault("verbose", false)
	v.SetDefault("tui.theme", "auto")
	v.SetDefault("tui.glyphs", "unicode")
	v.SetDefault("tui.mouse", true)
	v.SetDefault("web.addr", "127.0.0.1:3335")
	v.SetDefault("webtui.addr", "127.0.0.1:3334")

	v.SetConfigType("yaml")

	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv("FOLIO_CONFIG"))
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "folio"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
