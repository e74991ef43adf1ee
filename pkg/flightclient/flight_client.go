// Package flightclient implements the upstream flight-search adapters. Each
// client translates a flight.SearchRequest into one provider's wire format
// and parses the response into the common offer shape; failure modes are
// mapped onto the flight error taxonomy so the service can treat every
// adapter uniformly.
package flightclient

import (
	"fmt"
	"net/http"
	"time"
)

// Upstream payloads can be large; the timeout is generous on purpose.
const clientTimeout = 60 * time.Second

// NewHTTPClient returns the http.Client the adapters share: bounded by
// clientTimeout and cancellable through request contexts.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: clientTimeout}
}

// ProviderError tags an adapter failure with its provider name for logging.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func wrapErr(provider string, format string, args ...any) *ProviderError {
	return &ProviderError{Provider: provider, Err: fmt.Errorf(format, args...)}
}
