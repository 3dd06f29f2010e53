// Package market fetches daily OHLCV history from the Yahoo Finance chart API.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
	"github.com/saqif1/AI-Technical-Analysis/internal/config"
	"github.com/saqif1/AI-Technical-Analysis/internal/models"
)

// ErrNoData indicates the provider returned no usable bars for the ticker.
var ErrNoData = errors.New("no data for ticker")

// defaultUserAgent is required; Yahoo rejects requests without a
// browser-like UA.
const defaultUserAgent = "Mozilla/5.0"

// Client fetches price history from the Yahoo Finance v8 chart endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *common.Logger
}

// NewClient creates a market data client from configuration.
func NewClient(cfg config.MarketConfig, logger *common.Logger) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: ua,
		http:      &http.Client{Timeout: cfg.GetTimeout()},
		logger:    logger,
	}
}

// chartResponse mirrors the subset of the v8 chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDaily returns daily bars for ticker between start and end, oldest
// first. Bars with null fields (half-day halts, pre-listing gaps) are
// skipped. Returns ErrNoData when the provider has nothing for the ticker.
func (c *Client) FetchDaily(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build chart request: %w", err)
	}

	q := req.URL.Query()
	q.Set("interval", "1d")
	q.Set("period1", fmt.Sprintf("%d", start.Unix()))
	q.Set("period2", fmt.Sprintf("%d", end.Unix()))
	q.Set("events", "div,split")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chart for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request for %s returned status %d", ticker, resp.StatusCode)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("decode chart response for %s: %w", ticker, err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoData, ticker, chart.Chart.Error.Code)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	quote := result.Indicators.Quote[0]
	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	points := make([]models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		// Skip null bars
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}
		p := models.PricePoint{
			Date:     time.Unix(ts, 0).UTC(),
			Open:     *quote.Open[i],
			High:     *quote.High[i],
			Low:      *quote.Low[i],
			Close:    *quote.Close[i],
			AdjClose: *quote.Close[i],
			Volume:   *quote.Volume[i],
		}
		if adjClose != nil && i < len(adjClose) && adjClose[i] != nil {
			p.AdjClose = *adjClose[i]
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	c.logger.Debug().
		Str("ticker", ticker).
		Int("bars", len(points)).
		Msg("fetched daily history")

	return points, nil
}
