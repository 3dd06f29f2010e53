package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
	"github.com/saqif1/AI-Technical-Analysis/internal/models"
	"github.com/saqif1/AI-Technical-Analysis/internal/session"
)

// ReportHandler serves the completed analysis as a downloadable text file.
type ReportHandler struct {
	logger *common.Logger
	store  *session.Store
	now    func() time.Time
}

// NewReportHandler creates a new report handler.
func NewReportHandler(logger *common.Logger, store *session.Store) *ReportHandler {
	return &ReportHandler{logger: logger, store: store, now: time.Now}
}

// ServeHTTP handles GET /report.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	c, err := r.Cookie(session.CookieName)
	if err != nil || c.Value == "" {
		http.Error(w, "no analysis available", http.StatusNotFound)
		return
	}

	sess, ok := h.store.Get(c.Value)
	if !ok || !sess.Complete {
		http.Error(w, "no analysis available", http.StatusNotFound)
		return
	}

	now := h.now()
	report := models.BuildReport(sess.Ticker, sess.YearsBack, sess.AnalysisText, now)
	filename := models.ReportFilename(sess.Ticker, now)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(report))
}
