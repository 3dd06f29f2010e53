package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
	"github.com/saqif1/AI-Technical-Analysis/internal/config"
	"github.com/saqif1/AI-Technical-Analysis/internal/pipeline"
	"github.com/saqif1/AI-Technical-Analysis/internal/session"
)

// AnalyzeHandler runs an analysis from the dashboard form and commits the
// result into the caller's session. Session state only changes when the
// whole run succeeds; any failure leaves the previous result intact.
type AnalyzeHandler struct {
	logger   *common.Logger
	pages    *PageHandler
	store    *session.Store
	svc      *pipeline.Service
	defaults config.MarketConfig
	keys     config.KeysConfig
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(logger *common.Logger, pages *PageHandler, store *session.Store, svc *pipeline.Service, defaults config.MarketConfig, keys config.KeysConfig) *AnalyzeHandler {
	return &AnalyzeHandler{
		logger:   logger,
		pages:    pages,
		store:    store,
		svc:      svc,
		defaults: defaults,
		keys:     keys,
	}
}

// ServeHTTP handles POST /analyze.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := r.ParseForm(); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			WriteError(w, http.StatusRequestEntityTooLarge, "form body too large")
			return
		}
		WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	sess := ensureSession(w, r, h.store)

	ticker := r.PostFormValue("ticker")
	years := h.defaults.DefaultYears
	if v := r.PostFormValue("years"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			years = pipeline.ClampYears(n)
		}
	}

	// A key typed into the form wins over the configured one. The key is
	// never stored in the session and never logged.
	apiKey := r.PostFormValue("api_key")
	if apiKey == "" {
		apiKey = h.keys.OpenRouter
	}

	result, err := h.svc.Run(r.Context(), pipeline.Request{
		Ticker: ticker,
		Years:  years,
		APIKey: apiKey,
	})
	if err != nil {
		h.renderFailure(w, formData(ticker, years, h.defaults), csrfToken(r), err)
		return
	}

	sess.ApplyResult(result.Ticker, result.Years, result.Series, result.Analysis, result.GeneratedAt)
	h.store.Save(sess)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formData carries the submitted values back into the re-rendered form.
func formData(ticker string, years int, defaults config.MarketConfig) map[string]interface{} {
	if ticker == "" {
		ticker = defaults.DefaultTicker
	}
	return map[string]interface{}{
		"Page":    "dashboard",
		"Ticker":  ticker,
		"Years":   years,
		"Version": config.GetVersion(),
	}
}

// renderFailure maps a pipeline error to an HTTP status and re-renders the
// dashboard with the error message. Session state is untouched.
func (h *AnalyzeHandler) renderFailure(w http.ResponseWriter, data map[string]interface{}, token string, err error) {
	status := http.StatusBadGateway

	var inputErr *pipeline.InputError
	var noData *pipeline.NoDataError
	var transport *pipeline.TransportError
	var provider *pipeline.ProviderError

	switch {
	case errors.As(err, &inputErr):
		status = http.StatusBadRequest
	case errors.As(err, &noData):
		status = http.StatusNotFound
	case errors.As(err, &transport):
		status = http.StatusBadGateway
	case errors.As(err, &provider):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError || status == http.StatusBadGateway {
		h.logger.Warn().
			Str("error", err.Error()).
			Int("status", status).
			Msg("analysis run failed")
	}

	data["Error"] = err.Error()
	data["CSRFToken"] = token

	w.WriteHeader(status)
	h.pages.Render(w, "dashboard.html", data)
}
