package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/saqif1/AI-Technical-Analysis/internal/config"
	"github.com/saqif1/AI-Technical-Analysis/internal/models"
	"github.com/saqif1/AI-Technical-Analysis/internal/pipeline"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

// AnalyzeTool returns the tool definition for analyze_ticker.
func AnalyzeTool() mcp.Tool {
	return mcp.NewTool("analyze_ticker",
		mcp.WithDescription("Fetch daily price history for a ticker and generate an AI technical analysis. The result is kept so get_report can return it."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker symbol (e.g., SPY, AAPL, BTC-USD)")),
		mcp.WithNumber("years", mcp.Description("Years of historical data, 1-10 (default 3)")),
		mcp.WithString("api_key", mcp.Description("OpenRouter API key. Falls back to the server's configured key.")),
	)
}

func (h *Handler) analyzeToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := request.GetString("ticker", "")
		years := request.GetInt("years", 3)
		apiKey := request.GetString("api_key", "")
		if apiKey == "" {
			apiKey = h.keys.OpenRouter
		}

		result, err := h.svc.Run(ctx, pipeline.Request{
			Ticker: ticker,
			Years:  years,
			APIKey: apiKey,
		})
		if err != nil {
			return errorResult(err.Error()), nil
		}

		h.commitResult(result)

		return textResult(result.Analysis), nil
	}
}

// ReportTool returns the tool definition for get_report.
func ReportTool() mcp.Tool {
	return mcp.NewTool("get_report",
		mcp.WithDescription("Get the last analysis as a formatted text report with its download filename."),
	)
}

func (h *Handler) reportToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sess, ok := h.lastSession()
		if !ok || !sess.Complete {
			return errorResult("no analysis available; run analyze_ticker first"), nil
		}

		now := time.Now()
		out, err := json.Marshal(map[string]string{
			"filename": models.ReportFilename(sess.Ticker, now),
			"report":   models.BuildReport(sess.Ticker, sess.YearsBack, sess.AnalysisText, now),
		})
		if err != nil {
			return errorResult("failed to marshal report"), nil
		}
		return textResult(string(out)), nil
	}
}

// VersionTool returns the tool definition for get_version.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get server version and build info. Use this to verify connectivity."),
	)
}

func versionToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := json.Marshal(map[string]string{
			"version": config.GetVersion(),
			"build":   config.GetBuild(),
			"commit":  config.GetGitCommit(),
		})
		if err != nil {
			return errorResult("failed to marshal version info"), nil
		}
		return textResult(string(out)), nil
	}
}
