package ports

import "context"

// Transport fetches the raw response body for a prepared request URL.
// Synchronous and blocking; the caller owns retry and backoff policy.
type Transport interface {
	Fetch(ctx context.Context, url string) (string, error)
}
