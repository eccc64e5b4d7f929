package parser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"medclaim/internal/port"
)

// slot is one provider in a fallback chain together with its rate-limit backoff.
type slot struct {
	name   string
	parser port.DocumentParser

	mu          sync.Mutex
	pausedUntil time.Time
}

func (s *slot) paused(now time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pausedUntil, now.Before(s.pausedUntil)
}

func (s *slot) pause(until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pausedUntil = until
}

// FallbackParser asks providers in order until one answers. A provider that reported a
// rate limit is skipped until its Retry-After has passed.
type FallbackParser struct {
	slots []*slot
	now   func() time.Time
}

// NewFallbackParser creates a FallbackParser from parsers in preference order; names[i]
// labels parsers[i] in logs.
func NewFallbackParser(parsers []port.DocumentParser, names []string) *FallbackParser {
	slots := make([]*slot, len(parsers))
	for i, p := range parsers {
		slots[i] = &slot{name: names[i], parser: p}
	}
	return &FallbackParser{slots: slots, now: time.Now}
}

func (f *FallbackParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	now := f.now()

	var (
		lastErr     error
		onlyLimited = true
		resume      time.Time
	)
	soonest := func(t time.Time) {
		if resume.IsZero() || t.Before(resume) {
			resume = t
		}
	}

	for _, s := range f.slots {
		if until, paused := s.paused(now); paused {
			zap.L().Debug("parser.FallbackParser: provider paused after rate limit",
				zap.String("provider", s.name), zap.Time("until", until))
			soonest(until)
			continue
		}

		out, err := s.parser.Parse(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err
		zap.L().Warn("parser.FallbackParser: provider failed",
			zap.String("provider", s.name), zap.Error(err))

		var rl *RateLimitError
		if !errors.As(err, &rl) {
			onlyLimited = false
			continue
		}
		until := now.Add(rl.RetryAfter)
		s.pause(until)
		soonest(until)
	}

	// No error recorded means every provider was paused.
	if lastErr != nil && !onlyLimited {
		return nil, fmt.Errorf("all parsers failed: %w", lastErr)
	}
	wait := resume.Sub(f.now())
	if wait < time.Second {
		wait = time.Second
	}
	return nil, NewRateLimitError("all", errors.New("all parsers rate limited"), int(wait.Seconds()))
}
