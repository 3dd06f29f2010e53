package models

import (
	"fmt"
	"strings"
	"time"
)

// BuildReport formats a completed analysis as a plain-text report.
func BuildReport(ticker string, years int, analysis string, now time.Time) string {
	var b strings.Builder
	b.WriteString("AI Technical Analysis Report\n")
	b.WriteString(fmt.Sprintf("Generated on: %s\n", now.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Ticker: %s\n", ticker))
	b.WriteString(fmt.Sprintf("Period: %d years\n", years))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n\n")
	b.WriteString(analysis)
	return b.String()
}

// ReportFilename returns the download filename for a report.
func ReportFilename(ticker string, now time.Time) string {
	return fmt.Sprintf("%s_technical_analysis_%s.txt", ticker, now.Format("20060102"))
}
