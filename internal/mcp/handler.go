// Package mcp exposes the analysis pipeline to MCP clients over
// streamable HTTP.
package mcp

import (
	"net/http"
	"sync"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
	"github.com/saqif1/AI-Technical-Analysis/internal/config"
	"github.com/saqif1/AI-Technical-Analysis/internal/models"
	"github.com/saqif1/AI-Technical-Analysis/internal/pipeline"
	"github.com/saqif1/AI-Technical-Analysis/internal/session"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger

	svc   *pipeline.Service
	store *session.Store
	keys  config.KeysConfig

	// sessionID is the dedicated session MCP tool calls commit into, so
	// get_report can serve the last analyze_ticker result. Guarded by mu:
	// concurrent tool calls re-create the session when the TTL expires.
	mu        sync.Mutex
	sessionID string
}

// commitResult stores a pipeline result in the handler's session,
// re-creating the session if it expired or was evicted.
func (h *Handler) commitResult(result *pipeline.Result) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.store.Get(h.sessionID)
	if !ok {
		sess = h.store.Create()
		h.sessionID = sess.ID
	}
	sess.ApplyResult(result.Ticker, result.Years, result.Series, result.Analysis, result.GeneratedAt)
	h.store.Save(sess)
}

// lastSession returns the handler's session, if it still holds anything.
func (h *Handler) lastSession() (*models.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Get(h.sessionID)
}

// NewHandler creates the MCP handler and registers the tool set.
func NewHandler(logger *common.Logger, svc *pipeline.Service, store *session.Store, keys config.KeysConfig) *Handler {
	h := &Handler{
		logger: logger,
		svc:    svc,
		store:  store,
		keys:   keys,
	}
	h.sessionID = store.Create().ID

	mcpSrv := mcpserver.NewMCPServer(
		"ta-dashboard",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(AnalyzeTool(), h.analyzeToolHandler())
	mcpSrv.AddTool(ReportTool(), h.reportToolHandler())
	mcpSrv.AddTool(VersionTool(), versionToolHandler())

	h.streamable = mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", 3).
		Msg("MCP handler initialized")

	return h
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
