package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/saqif1/AI-Technical-Analysis/internal/models"
)

func samplePoint(day int, close float64) models.PricePoint {
	return models.PricePoint{
		Date:     time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		Open:     close - 1,
		High:     close + 1,
		Low:      close - 2,
		Close:    close,
		AdjClose: close,
		Volume:   1000,
	}
}

func TestSerializeSeries(t *testing.T) {
	series := []models.PricePoint{samplePoint(2, 100.5), samplePoint(3, 101.25)}

	table := SerializeSeries(series)
	lines := strings.Split(table, "\n")

	// Header plus one row per bar
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date") {
		t.Errorf("expected header line, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "2025-01-02") {
		t.Errorf("expected first row dated 2025-01-02, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "101.2500") {
		t.Errorf("expected second row close 101.2500, got %q", lines[2])
	}
}

func TestSerializeSeries_AllRowsIncluded(t *testing.T) {
	// The full history is serialized with no truncation
	series := make([]models.PricePoint, 0, 2520)
	for i := 0; i < 2520; i++ {
		series = append(series, models.PricePoint{
			Date:   time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Close:  100,
			Volume: 1,
		})
	}

	table := SerializeSeries(series)
	if got := len(strings.Split(table, "\n")); got != 2521 {
		t.Errorf("expected 2521 lines (header + 2520 rows), got %d", got)
	}
}

func TestCompose(t *testing.T) {
	msg := Compose([]models.PricePoint{samplePoint(2, 100)})

	if !strings.HasPrefix(msg, "Perform comprehensive technical analysis on this stock:\n\n") {
		t.Errorf("unexpected message prefix: %q", msg[:60])
	}
	if !strings.Contains(msg, "2025-01-02") {
		t.Error("expected serialized table in message")
	}
}

func TestSystemGuide(t *testing.T) {
	if !strings.HasPrefix(SystemGuide, "You're a technical analysis pro") {
		t.Error("unexpected system guide opening")
	}
	if !strings.Contains(SystemGuide, "Support and Resistance") {
		t.Error("expected support/resistance section in guide")
	}
	if strings.HasSuffix(SystemGuide, "\n") {
		t.Error("system guide should not carry trailing newline")
	}
}
