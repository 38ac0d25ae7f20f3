package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the intent gateway service
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"8002"`

	// CORS origin allowed to call the API. "*" keeps the browser extension
	// working during development; pin it to the extension origin in production.
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`

	// OpenAI API configuration (used for both Whisper STT and intent interpretation)
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:""` // Override for proxies and tests

	// Speech-to-text configuration
	WhisperModel string `envconfig:"WHISPER_MODEL" default:"whisper-1"`

	// Intent interpretation configuration
	ChatModel       string  `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`
	ChatTemperature float64 `envconfig:"CHAT_TEMPERATURE" default:"0.3"`

	// Audio admission bounds. Clips below the minimum are almost always
	// silence or button noise and waste a Whisper call.
	AudioMinSize int64 `envconfig:"AUDIO_MIN_SIZE" default:"1500"`     // bytes
	AudioMaxSize int64 `envconfig:"AUDIO_MAX_SIZE" default:"10485760"` // 10 MiB

	// Scratch directory for transient audio files. Defaults to ./tmp
	TempDir string `envconfig:"TEMP_DIR" default:""`

	// Age in minutes after which stale temp files are swept
	TempSweepAge int `envconfig:"TEMP_SWEEP_AGE" default:"60"`

	// Timeout applied to each external call (STT, chat completion), in seconds
	RequestTimeout int `envconfig:"REQUEST_TIMEOUT" default:"30"`

	// Resilience configuration
	CircuitBreakerMaxFailures  int `envconfig:"CIRCUIT_BREAKER_MAX_FAILURES" default:"5"`   // Failures before opening circuit
	CircuitBreakerResetTimeout int `envconfig:"CIRCUIT_BREAKER_RESET_TIMEOUT" default:"30"` // Seconds before attempting recovery

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate required fields
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.AudioMinSize < 0 || cfg.AudioMaxSize <= cfg.AudioMinSize {
		return nil, fmt.Errorf("invalid audio size bounds: min=%d max=%d", cfg.AudioMinSize, cfg.AudioMaxSize)
	}

	if cfg.TempDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		cfg.TempDir = filepath.Join(wd, "tmp")
	}

	return &cfg, nil
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
