package domain

import "errors"

// Error kinds shared by services and handlers. Services wrap provider errors
// into one of these so the HTTP layer can map them with errors.Is without
// knowing about lib/pq or resty.
var (
	// ErrInvalidArgument malformed or missing caller input; never reaches the store.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound no matching row.
	ErrNotFound = errors.New("not found")

	// ErrPersistence store fault.
	ErrPersistence = errors.New("persistence failure")

	// ErrUpstreamUnavailable the prediction call failed at the transport level
	// or returned a non-2xx status.
	ErrUpstreamUnavailable = errors.New("prediction service unavailable")

	// ErrUpstreamInvalidResponse the prediction call succeeded but the body
	// could not be parsed.
	ErrUpstreamInvalidResponse = errors.New("invalid prediction service response")
)
