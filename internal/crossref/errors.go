// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"errors"
	"fmt"
)

// Common errors returned by the client. Per prd002-metadata-source R3.1-R3.4,
// callers classify outcomes with IsNotFound and IsTransient rather than
// matching sentinels directly.
var (
	// ErrNotFound indicates the identifier is unresolvable by the source.
	ErrNotFound = errors.New("work not found")

	// ErrRateLimited indicates the source rejected the request for pacing.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnavailable indicates a 5xx-class response from the source.
	ErrUnavailable = errors.New("source unavailable")

	// ErrNetwork indicates a transport-level failure (timeout, refused
	// connection, DNS).
	ErrNetwork = errors.New("network error")

	// ErrMalformed indicates a response that could not be decoded.
	ErrMalformed = errors.New("malformed response")
)

// APIError is a non-200 response from the works API.
type APIError struct {
	StatusCode int
	DOI        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crossref: HTTP %d for %s", e.StatusCode, e.DOI)
}

// IsNotFound reports whether err means the identifier does not resolve.
// A Not-Found entry is a permanent per-entry failure: skipped, never retried.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsTransient reports whether err is worth another attempt: rate-limit
// rejections, 5xx responses, and transport failures. Malformed responses and
// other 4xx statuses are permanent.
func IsTransient(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable) || errors.Is(err, ErrNetwork) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
