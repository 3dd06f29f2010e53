package handlers

import (
	"net/http"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
	"github.com/saqif1/AI-Technical-Analysis/internal/config"
	"github.com/saqif1/AI-Technical-Analysis/internal/models"
	"github.com/saqif1/AI-Technical-Analysis/internal/session"
)

// DashboardHandler renders the analysis dashboard. Rendering is a pure
// read of session state; it never triggers a fetch or a model call.
type DashboardHandler struct {
	logger   *common.Logger
	pages    *PageHandler
	store    *session.Store
	defaults config.MarketConfig
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(logger *common.Logger, pages *PageHandler, store *session.Store, defaults config.MarketConfig) *DashboardHandler {
	return &DashboardHandler{
		logger:   logger,
		pages:    pages,
		store:    store,
		defaults: defaults,
	}
}

// csrfToken returns the CSRF token the middleware attached to the request,
// for embedding in the form.
func csrfToken(r *http.Request) string {
	if c, err := r.Cookie("_csrf"); err == nil {
		return c.Value
	}
	return ""
}

// ensureSession resolves the browser's session from its cookie, creating a
// fresh session (and setting the cookie) when none exists.
func ensureSession(w http.ResponseWriter, r *http.Request, store *session.Store) *models.Session {
	if c, err := r.Cookie(session.CookieName); err == nil && c.Value != "" {
		if sess, ok := store.Get(c.Value); ok {
			return sess
		}
	}

	sess := store.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// dashboardData builds the template payload from session state, falling
// back to configured defaults for a fresh session.
func (h *DashboardHandler) dashboardData(sess *models.Session) map[string]interface{} {
	ticker := sess.Ticker
	if ticker == "" {
		ticker = h.defaults.DefaultTicker
	}
	years := sess.YearsBack
	if years == 0 {
		years = h.defaults.DefaultYears
	}

	return map[string]interface{}{
		"Page":         "dashboard",
		"Ticker":       ticker,
		"Years":        years,
		"AnalysisDone": sess.Complete,
		"AnalysisText": sess.AnalysisText,
		"Version":      config.GetVersion(),
	}
}

// ServeHTTP handles GET /.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	sess := ensureSession(w, r, h.store)
	data := h.dashboardData(sess)
	data["CSRFToken"] = csrfToken(r)
	h.pages.Render(w, "dashboard.html", data)
}
