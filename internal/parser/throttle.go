package parser

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"medclaim/internal/port"
)

// ThrottledParser limits the rate of calls reaching the wrapped parser.
type ThrottledParser struct {
	inner   port.DocumentParser
	limiter *rate.Limiter
}

// NewThrottledParser wraps inner with a token bucket of the given rate and burst.
func NewThrottledParser(inner port.DocumentParser, limit rate.Limit, burst int) *ThrottledParser {
	if burst < 1 {
		burst = 1
	}
	return &ThrottledParser{inner: inner, limiter: rate.NewLimiter(limit, burst)}
}

func (t *ThrottledParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for parser rate limiter: %w", err)
	}
	return t.inner.Parse(ctx, input)
}
