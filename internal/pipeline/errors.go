package pipeline

import "fmt"

// InputError reports a rejected user input before any external call is made.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// NoDataError reports that the market provider had no history for a ticker.
type NoDataError struct {
	Ticker string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("No data found for ticker: %s. Please check the symbol.", e.Ticker)
}

// TransportError reports a network or protocol failure reaching a provider.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError reports that the analysis provider accepted the request but
// failed to produce a usable result.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string { return fmt.Sprintf("%s: %v", e.Provider, e.Err) }
func (e *ProviderError) Unwrap() error { return e.Err }
