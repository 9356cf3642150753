package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultMediumBaseURL = "https://api.medium.com/v1"
	DefaultXBaseURL      = "https://api.twitter.com"
)

// Config is everything the tools read from the environment, .env files and
// an optional config file. It is loaded once in main and passed down.
type Config struct {
	RootDir string       `mapstructure:"root_dir"`
	OpenAI  OpenAIConfig `mapstructure:"openai"`
	Medium  MediumConfig `mapstructure:"medium"`
	X       XConfig      `mapstructure:"x"`
	Log     LogConfig    `mapstructure:"log"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type MediumConfig struct {
	IntegrationToken string `mapstructure:"integration_token"`
	UserID           string `mapstructure:"user_id"`
	BaseURL          string `mapstructure:"base_url"`
	// ContentFormat is "markdown" or "html".
	ContentFormat string `mapstructure:"content_format"`
}

// XConfig holds the four OAuth1 components for the X API.
type XConfig struct {
	APIKey       string `mapstructure:"api_key"`
	APISecret    string `mapstructure:"api_secret"`
	AccessToken  string `mapstructure:"access_token"`
	AccessSecret string `mapstructure:"access_secret"`
	BaseURL      string `mapstructure:"base_url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings maps config keys to the variable names the tools have always used.
var envBindings = map[string]string{
	"openai.api_key":           "OPENAI_API_KEY",
	"openai.base_url":          "OPENAI_BASE_URL",
	"medium.integration_token": "MEDIUM_INTEGRATION_TOKEN",
	"medium.user_id":           "MEDIUM_USER_ID",
	"medium.base_url":          "MEDIUM_BASE_URL",
	"x.api_key":                "TWITTER_API_KEY",
	"x.api_secret":             "TWITTER_API_SECRET",
	"x.access_token":           "TWITTER_ACCESS_TOKEN",
	"x.access_secret":          "TWITTER_ACCESS_SECRET",
	"x.base_url":               "X_BASE_URL",
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file; empty means search ./config.yaml.
	ConfigFile string
	// RootDir is the install root; a .env there is loaded after ./.env.
	RootDir string
}

// Load reads .env files, then the config file (if any), then the environment.
// Variables already set in the process environment are never overwritten by .env.
func Load(opts Options) (*Config, error) {
	loadDotEnv(".env")
	if opts.RootDir != "" {
		loadDotEnv(filepath.Join(opts.RootDir, ".env"))
	}

	v := viper.New()
	v.SetDefault("root_dir", opts.RootDir)
	v.SetDefault("medium.base_url", DefaultMediumBaseURL)
	v.SetDefault("medium.content_format", "markdown")
	v.SetDefault("x.base_url", DefaultXBaseURL)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("PIPELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func loadDotEnv(path string) {
	// A missing .env is the common case.
	_ = godotenv.Load(path)
}
