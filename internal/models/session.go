package models

import "time"

// Session holds the per-browser dashboard state: the last analysed ticker,
// its price series, and the generated analysis text. All result fields are
// replaced together via ApplyResult so a session never mixes the series of
// one run with the analysis of another.
type Session struct {
	ID           string       `json:"id"`
	Ticker       string       `json:"ticker"`
	YearsBack    int          `json:"years_back"`
	Series       []PricePoint `json:"series"`
	AnalysisText string       `json:"analysis_text"`
	Complete     bool         `json:"complete"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ApplyResult commits a successful analysis run into the session. It is the
// only path that mutates result fields, and it replaces them all at once.
func (s *Session) ApplyResult(ticker string, years int, series []PricePoint, analysis string, now time.Time) {
	s.Ticker = ticker
	s.YearsBack = years
	s.Series = series
	s.AnalysisText = analysis
	s.Complete = true
	s.UpdatedAt = now
}

// Clone returns a deep copy so callers can read session state without
// racing writers in the store.
func (s *Session) Clone() *Session {
	cp := *s
	if s.Series != nil {
		cp.Series = make([]PricePoint, len(s.Series))
		copy(cp.Series, s.Series)
	}
	return &cp
}
