// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP capability shared by resolvers, the page
// fetcher, and the library client.
package httputil

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paperclip/pkg/types"
)

// Doer is the fetch capability used across packages. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to Doer. Tests use it for deterministic fakes.
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// NewClient returns an *http.Client configured from cfg. A zero timeout
// leaves requests bounded only by the transport and the request context.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// Limited throttles requests through a token bucket. It never retries: a
// failed request is returned to the caller as-is.
type Limited struct {
	next    Doer
	limiter *rate.Limiter
}

// NewLimited wraps next with a limiter allowing perSecond requests with the
// given burst. A non-positive perSecond disables throttling.
func NewLimited(next Doer, perSecond float64, burst int) *Limited {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &Limited{next: next, limiter: rate.NewLimiter(limit, burst)}
}

// Do waits for a token, honouring the request context, then sends req.
func (l *Limited) Do(req *http.Request) (*http.Response, error) {
	if err := l.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}
	return l.next.Do(req)
}
