// Package config loads server settings from defaults, an optional
// config.yaml, JDS_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zhubert/jds-knowledge/paths"
)

// EnvPrefix is prepended to every environment override, e.g. JDS_DEBUG.
const EnvPrefix = "JDS"

// Defaults
const (
	DefaultMaxMessageSize = 1_000_000
	DefaultFetchTimeout   = 10 * time.Second
)

// Configuration keys
const (
	KeyDataFile       = "data_file"
	KeyMaxMessageSize = "max_message_size"
	KeyDebug          = "debug"
	KeyLogFile        = "log_file"
	KeyLogConsole     = "log_console"
	KeyUpdateURL      = "update_url"
	KeyFetchTimeout   = "fetch_timeout"
)

var (
	ErrInvalidMessageSize  = errors.New("max_message_size must be positive")
	ErrInvalidFetchTimeout = errors.New("fetch_timeout must be positive")
	ErrInvalidUpdateURL    = errors.New("update_url must be an absolute http or https URL")
)

// Config holds the resolved server settings.
type Config struct {
	DataFile       string        `mapstructure:"data_file"`        // Reference data file; empty means cache, then embedded
	MaxMessageSize int           `mapstructure:"max_message_size"` // Largest accepted request line in bytes
	Debug          bool          `mapstructure:"debug"`
	LogFile        string        `mapstructure:"log_file"`    // Empty means the default state-directory log
	LogConsole     bool          `mapstructure:"log_console"` // Also log to stderr
	UpdateURL      string        `mapstructure:"update_url"`  // Source for the fetch command
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`

	// File is the config file that was read, or "" if none was found.
	File string `mapstructure:"-"`
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"data-file":        KeyDataFile,
	"max-message-size": KeyMaxMessageSize,
	"debug":            KeyDebug,
	"log-file":         KeyLogFile,
	"log-console":      KeyLogConsole,
	"url":              KeyUpdateURL,
	"timeout":          KeyFetchTimeout,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataFile, "")
	v.SetDefault(KeyMaxMessageSize, DefaultMaxMessageSize)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogConsole, false)
	v.SetDefault(KeyUpdateURL, "")
	v.SetDefault(KeyFetchTimeout, DefaultFetchTimeout)
}

// RegisterFlags adds the server flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("data-file", "", "reference data file (YAML or JSON)")
	fs.Int("max-message-size", DefaultMaxMessageSize, "largest accepted request line in bytes")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("log-file", "", "log file path")
	fs.Bool("log-console", false, "also write logs to stderr")
}

// RegisterFetchFlags adds the flags used by the fetch command to fs.
func RegisterFetchFlags(fs *pflag.FlagSet) {
	fs.String("url", "", "reference data URL to download")
	fs.Duration("timeout", DefaultFetchTimeout, "download timeout")
}

// Load resolves the configuration. An explicit configFile must exist;
// otherwise <config>/config.yaml is read when present. Flags in fs that
// were set on the command line override everything else.
func Load(configFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	file, err := readConfigFile(v, configFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = file

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, explicit string) (string, error) {
	path := explicit
	if path == "" {
		def, err := paths.ConfigFilePath()
		if err != nil {
			return "", nil
		}
		if _, err := os.Stat(def); err != nil {
			return "", nil
		}
		path = def
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read config %s: %w", path, err)
	}
	return path, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.MaxMessageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMessageSize, c.MaxMessageSize)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidFetchTimeout, c.FetchTimeout)
	}
	if c.UpdateURL != "" {
		u, err := url.Parse(c.UpdateURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidUpdateURL, c.UpdateURL)
		}
	}
	return nil
}
