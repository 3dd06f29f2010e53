package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server      ServerConfig         `toml:"server"`
	Market      MarketConfig         `toml:"market"`
	Analysis    AnalysisConfig       `toml:"analysis"`
	Keys        KeysConfig           `toml:"keys"`
	Session     SessionConfig        `toml:"session"`
	Logging     common.LoggingConfig `toml:"logging"`
	Environment string               `toml:"environment"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// MarketConfig contains market data provider settings.
type MarketConfig struct {
	BaseURL       string `toml:"base_url"`
	Timeout       string `toml:"timeout"`
	UserAgent     string `toml:"user_agent"`
	DefaultTicker string `toml:"default_ticker"`
	DefaultYears  int    `toml:"default_years"`
}

// GetTimeout parses the market request timeout, falling back to 20s.
func (m MarketConfig) GetTimeout() time.Duration {
	if d, err := time.ParseDuration(m.Timeout); err == nil && d > 0 {
		return d
	}
	return 20 * time.Second
}

// AnalysisConfig contains AI analysis provider settings.
type AnalysisConfig struct {
	BaseURL   string `toml:"base_url"`
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
	Timeout   string `toml:"timeout"`
	Referer   string `toml:"referer"`
	Title     string `toml:"title"`
}

// GetTimeout parses the analysis request timeout, falling back to 120s.
// Model inference routinely takes longer than a market data fetch.
func (a AnalysisConfig) GetTimeout() time.Duration {
	if d, err := time.ParseDuration(a.Timeout); err == nil && d > 0 {
		return d
	}
	return 120 * time.Second
}

// KeysConfig contains API credentials. Keys are never logged or persisted
// beyond process memory.
type KeysConfig struct {
	OpenRouter string `toml:"openrouter"`
}

// SessionConfig contains in-memory session store settings.
type SessionConfig struct {
	TTL        string `toml:"ttl"`
	MaxEntries int    `toml:"max_entries"`
}

// GetTTL parses the session TTL, falling back to 2h.
func (s SessionConfig) GetTTL() time.Duration {
	if d, err := time.ParseDuration(s.TTL); err == nil && d > 0 {
		return d
	}
	return 2 * time.Hour
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)
	config.Environment = normalizeEnvironment(config.Environment)

	return config, nil
}

// applyEnvOverrides applies TA_* environment variable overrides to config.
// OPENROUTER_API_KEY is honored for the credential itself.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("TA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("TA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if url := os.Getenv("TA_MARKET_URL"); url != "" {
		config.Market.BaseURL = url
	}
	if timeout := os.Getenv("TA_MARKET_TIMEOUT"); timeout != "" {
		config.Market.Timeout = timeout
	}
	if ua := os.Getenv("TA_MARKET_USER_AGENT"); ua != "" {
		config.Market.UserAgent = ua
	}
	if url := os.Getenv("TA_ANALYSIS_URL"); url != "" {
		config.Analysis.BaseURL = url
	}
	if model := os.Getenv("TA_ANALYSIS_MODEL"); model != "" {
		config.Analysis.Model = model
	}
	if timeout := os.Getenv("TA_ANALYSIS_TIMEOUT"); timeout != "" {
		config.Analysis.Timeout = timeout
	}
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		config.Keys.OpenRouter = key
	}
	if level := os.Getenv("TA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("TA_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if env := os.Getenv("TA_ENVIRONMENT"); env != "" {
		config.Environment = env
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// normalizeEnvironment maps short environment names to canonical ones.
func normalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "dev", "development":
		return "development"
	case "prod", "production":
		return "production"
	default:
		return strings.ToLower(strings.TrimSpace(env))
	}
}

// Validate returns a list of configuration issues. An empty list means
// the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Market.BaseURL == "" {
		issues = append(issues, "market.base_url must not be empty")
	}
	if c.Analysis.BaseURL == "" {
		issues = append(issues, "analysis.base_url must not be empty")
	}
	if c.Analysis.Model == "" {
		issues = append(issues, "analysis.model must not be empty")
	}
	if c.Market.DefaultYears < 1 || c.Market.DefaultYears > 10 {
		issues = append(issues, fmt.Sprintf("market.default_years must be between 1 and 10 (got %d)", c.Market.DefaultYears))
	}
	return issues
}
