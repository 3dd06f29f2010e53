package config

import "github.com/saqif1/AI-Technical-Analysis/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8501,
			Host: "localhost",
		},
		Market: MarketConfig{
			BaseURL:       "https://query1.finance.yahoo.com",
			Timeout:       "20s",
			UserAgent:     "Mozilla/5.0",
			DefaultTicker: "SPY",
			DefaultYears:  3,
		},
		Analysis: AnalysisConfig{
			BaseURL:   "https://openrouter.ai/api/v1",
			Model:     "deepseek/deepseek-v3.2-exp",
			MaxTokens: 2000,
			Timeout:   "120s",
			Referer:   "http://localhost:8501",
			Title:     "Stock Technical Analysis Dashboard",
		},
		Keys: KeysConfig{},
		Session: SessionConfig{
			TTL:        "2h",
			MaxEntries: 1000,
		},
		Logging: common.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Environment: "development",
	}
}
