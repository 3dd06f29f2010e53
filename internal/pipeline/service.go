// Package pipeline orchestrates a single analysis run: validate inputs,
// fetch price history, compose the prompt, and call the model. Each run is
// a single attempt with no retries and no caching between runs.
package pipeline

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
	"github.com/saqif1/AI-Technical-Analysis/internal/market"
	"github.com/saqif1/AI-Technical-Analysis/internal/models"
	"github.com/saqif1/AI-Technical-Analysis/internal/prompt"
)

const (
	MinYears = 1
	MaxYears = 10
)

// Fetcher retrieves daily price history for a ticker.
type Fetcher interface {
	FetchDaily(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error)
}

// Analyzer generates analysis text from a system guide and user message.
type Analyzer interface {
	Analyze(ctx context.Context, apiKey, systemMsg, userMsg string) (string, error)
}

// Request carries the inputs for one analysis run. APIKey is used for the
// duration of the run only and is never stored.
type Request struct {
	Ticker string
	Years  int
	APIKey string
}

// Result is the complete output of a successful run. Partial results are
// never returned; a failed run yields an error and nothing else.
type Result struct {
	Ticker      string
	Years       int
	Series      []models.PricePoint
	Analysis    string
	GeneratedAt time.Time
}

// Service runs the fetch-then-analyze pipeline.
type Service struct {
	fetcher  Fetcher
	analyzer Analyzer
	logger   *common.Logger
	now      func() time.Time
}

// NewService creates a pipeline service.
func NewService(fetcher Fetcher, analyzer Analyzer, logger *common.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		analyzer: analyzer,
		logger:   logger,
		now:      time.Now,
	}
}

// ClampYears forces the lookback window into the supported range. A zero
// or negative value falls back to the minimum rather than erroring, the
// form widget being the primary guard.
func ClampYears(years int) int {
	if years < MinYears {
		return MinYears
	}
	if years > MaxYears {
		return MaxYears
	}
	return years
}

// Run executes one analysis end to end. Validation failures return
// InputError before any external call. The market fetch and the model call
// each happen exactly once per run.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		return nil, &InputError{Field: "api_key", Reason: "Please enter your OpenRouter API key."}
	}

	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		return nil, &InputError{Field: "ticker", Reason: "Please enter a valid stock ticker."}
	}

	years := ClampYears(req.Years)

	// Lookback window measured in calendar days, matching a years*365 span.
	end := s.now()
	start := end.AddDate(0, 0, -years*365)

	s.logger.Info().
		Str("ticker", ticker).
		Int("years", years).
		Msg("starting analysis run")

	series, err := s.fetcher.FetchDaily(ctx, ticker, start, end)
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			return nil, &NoDataError{Ticker: ticker}
		}
		return nil, &TransportError{Op: "fetch market data", Err: err}
	}

	userMsg := prompt.Compose(series)

	analysis, err := s.analyzer.Analyze(ctx, apiKey, prompt.SystemGuide, userMsg)
	if err != nil {
		// Dial, TLS, and timeout failures surface as *url.Error from the
		// HTTP client; everything past the transport is on the provider.
		var urlErr *url.Error
		if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &TransportError{Op: "call analysis model", Err: err}
		}
		return nil, &ProviderError{Provider: "analysis model", Err: err}
	}

	s.logger.Info().
		Str("ticker", ticker).
		Int("bars", len(series)).
		Msg("analysis run complete")

	return &Result{
		Ticker:      ticker,
		Years:       years,
		Series:      series,
		Analysis:    analysis,
		GeneratedAt: s.now(),
	}, nil
}
