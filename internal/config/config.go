package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the assistant service
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	API    APIConfig    `mapstructure:"api"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Chat   ChatConfig   `mapstructure:"chat"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
}

// APIConfig holds API authentication configuration
type APIConfig struct {
	// Key protects the /api group when set; empty disables auth.
	Key          string   `mapstructure:"key"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// GeminiConfig holds remote model configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

// ChatConfig holds conversation orchestration configuration
type ChatConfig struct {
	// Pacing is the cosmetic delay between the searching and generating
	// sub-phases. Zero disables it.
	Pacing time.Duration `mapstructure:"pacing"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("ASISTENTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The key comes exclusively from configuration. Refusing to start here
	// keeps a missing credential from surfacing as per-turn failures later.
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required: set gemini.api_key or ASISTENTE_GEMINI_API_KEY")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")

	v.SetDefault("api.key", "")
	v.SetDefault("api.allow_origins", []string{"*"})

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.temperature", 0.3)

	v.SetDefault("chat.pacing", 500*time.Millisecond)

	_ = v.BindEnv("gemini.api_key", "ASISTENTE_GEMINI_API_KEY", "GEMINI_API_KEY")
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
