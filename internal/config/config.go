package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string `env:"ENV" envDefault:"development"`
	Port           string `env:"API_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string `env:"LOG_FILE"`
	LogRequests    bool   `env:"LOG_REQUESTS" envDefault:"false"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Email Configuration
	Email EmailConfig

	// Spam protection
	RecaptchaSecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`

	// Contact route rate limiting
	ContactRateRPS   float64 `env:"CONTACT_RATE_RPS" envDefault:"0.2"`
	ContactRateBurst int     `env:"CONTACT_RATE_BURST" envDefault:"5"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"sirchweb-api"`
}

// EmailConfig is the transactional email provider configuration.
// An empty APIKey leaves the dispatcher in the "not configured" state.
type EmailConfig struct {
	APIKey           string        `env:"RESEND_API_KEY"`
	From             string        `env:"EMAIL_FROM" envDefault:"SIRCH SOLUTIONS KE <noreply@sirchsolutions.co.ke>"`
	To               string        `env:"EMAIL_TO" envDefault:"info@sirchsolutions.co.ke"`
	SendConfirmation bool          `env:"CONTACT_SEND_CONFIRMATION" envDefault:"true"`
	Timeout          time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
	BaseURL          string        `env:"RESEND_BASE_URL" envDefault:"https://api.resend.com"`
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// A specific ENV file wins over the generic one; godotenv never overrides
	// variables that are already set.
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds a Config from the current process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// Validate rejects values that would make the server misbehave at runtime
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("API_PORT must not be empty")
	}
	if c.ContactRateRPS <= 0 {
		return fmt.Errorf("CONTACT_RATE_RPS must be positive")
	}
	if c.ContactRateBurst <= 0 {
		return fmt.Errorf("CONTACT_RATE_BURST must be positive")
	}
	if c.Email.Timeout <= 0 {
		return fmt.Errorf("EMAIL_TIMEOUT must be positive")
	}
	if c.Email.APIKey != "" && (c.Email.From == "" || c.Email.To == "") {
		return fmt.Errorf("EMAIL_FROM and EMAIL_TO are required when RESEND_API_KEY is set")
	}
	return nil
}
