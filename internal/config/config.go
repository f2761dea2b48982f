package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/bnema/heihealth-cli/internal/adapters/backend"
)

const (
	configName  = "config"
	configType  = "toml"
	configDir   = ".heihealth"
	sessionFile = "session.toml"
	envPrefix   = "HH"

	KeyBaseURL     = "api.base_url"
	KeyTimeout     = "api.timeout"
	KeySessionPath = "session.path"
	KeyLogLevel    = "log.level"

	DefaultBaseURL  = "http://127.0.0.1:8000"
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "warn"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Dir is the directory holding the config and session files under home.
func Dir(home string) string {
	return filepath.Join(home, configDir)
}

// Load reads ~/.heihealth/config.toml when present and applies HH_* environment overrides.
func Load(v *viper.Viper, home string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if strings.TrimSpace(home) == "" {
		return Config{}, errors.New("home directory is empty")
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(Dir(home))

	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, DefaultTimeout.String())
	v.SetDefault(KeySessionPath, filepath.Join(Dir(home), sessionFile))
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Session.Path = expandHome(cfg.Session.Path, home)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := backend.ValidateBaseURL(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyBaseURL, err)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid %s: must be positive", KeyTimeout)
	}
	if strings.TrimSpace(c.Session.Path) == "" {
		return fmt.Errorf("invalid %s: path is empty", KeySessionPath)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	return nil
}

func (c Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(strings.TrimSpace(c.Log.Level))
}

func expandHome(path string, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
