package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	LLM      LLMConfig      `yaml:"llm" envconfig:"LLM"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/crmkit.log"`
}

// LLMConfig contains configuration for the narration/text-generation client.
// An empty APIKey disables the client; analysis still works without it.
type LLMConfig struct {
	APIKey      string        `yaml:"api_key" envconfig:"API_KEY"`
	Model       string        `yaml:"model" envconfig:"MODEL" default:"gemini-2.0-flash"`
	Temperature float64       `yaml:"temperature" envconfig:"TEMPERATURE" default:"0.3"`
	MaxTokens   int           `yaml:"max_tokens" envconfig:"MAX_TOKENS" default:"2048"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"45s"`
	RateRPS     float64       `yaml:"rate_rps" envconfig:"RATE_RPS" default:"1"`
	RateBurst   int           `yaml:"rate_burst" envconfig:"RATE_BURST" default:"3"`
}

// AnalysisConfig contains bounds and policy constants for dataset analysis
type AnalysisConfig struct {
	MaxRows        int   `yaml:"max_rows" envconfig:"MAX_ROWS" default:"10000"`
	MinColumns     int   `yaml:"min_columns" envconfig:"MIN_COLUMNS" default:"2"`
	SampleSize     int   `yaml:"sample_size" envconfig:"SAMPLE_SIZE" default:"100"`
	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	Parallel       bool  `yaml:"parallel" envconfig:"PARALLEL" default:"false"`
}

// SecurityConfig contains request-level protections
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"50"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"25"`
}

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables win over file values.
func Load() (*Config, error) {
	var cfg Config

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileCfg
	}

	if err := envconfig.Process("CRMKIT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// getConfigFilePath returns the config file path, honoring the override env var
func getConfigFilePath() string {
	if path := os.Getenv("CRMKIT_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	if c.Analysis.MaxRows < 1 {
		return fmt.Errorf("analysis max_rows must be positive, got %d", c.Analysis.MaxRows)
	}
	if c.Analysis.MinColumns < 1 {
		return fmt.Errorf("analysis min_columns must be positive, got %d", c.Analysis.MinColumns)
	}
	if c.Analysis.SampleSize < 1 {
		return fmt.Errorf("analysis sample_size must be positive, got %d", c.Analysis.SampleSize)
	}
	if c.Analysis.MaxUploadBytes < 1 {
		return fmt.Errorf("analysis max_upload_bytes must be positive, got %d", c.Analysis.MaxUploadBytes)
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 1 {
		return fmt.Errorf("llm temperature must be between 0 and 1, got %.2f", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}

	return nil
}
