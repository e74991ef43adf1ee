package flight

import "errors"

// Request validation errors, surfaced to the HTTP layer as 400s.
var (
	ErrMissingOrigin         = errors.New("origin is required")
	ErrMissingDestination    = errors.New("destination is required")
	ErrMissingDepartureDate  = errors.New("departure_date is required")
	ErrReturnBeforeDeparture = errors.New("return_date must not precede departure_date")
	ErrInvalidCabinClass     = errors.New("invalid cabin_class")
)

// Adapter failure taxonomy. Adapters wrap these so the service can log
// throttling distinctly from breakage and treat no-results as a valid empty
// list; every one of them except ErrNoResults triggers the mock fallback.
var (
	ErrNoResults   = errors.New("no flights found")
	ErrRateLimited = errors.New("provider rate limited")
	ErrAuth        = errors.New("provider authentication failed")
	ErrMalformed   = errors.New("malformed provider payload")
)
