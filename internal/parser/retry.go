package parser

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"medclaim/internal/port"
)

const defaultRetryBackoff = 500 * time.Millisecond

// RetryingParser repeats failed calls to a single provider with exponential backoff.
// Rate limits and client errors are returned immediately so the fallback chain can move on.
type RetryingParser struct {
	inner      port.DocumentParser
	name       string
	maxRetries int
	backoff    time.Duration
}

// NewRetryingParser wraps inner; maxRetries counts attempts after the first.
func NewRetryingParser(inner port.DocumentParser, name string, maxRetries int, backoff time.Duration) *RetryingParser {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingParser{inner: inner, name: name, maxRetries: maxRetries, backoff: backoff}
}

func (r *RetryingParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	delay := r.backoff
	for attempt := 0; ; attempt++ {
		out, err := r.inner.Parse(ctx, input)
		if err == nil {
			return out, nil
		}
		if attempt >= r.maxRetries || !retryable(ctx, err) {
			return nil, err
		}

		zap.L().Warn("parser.RetryingParser: attempt failed, retrying",
			zap.String("provider", r.name),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return false
	}
	var stErr *StatusError
	if errors.As(err, &stErr) {
		return stErr.Temporary()
	}
	return true
}
