package parser

import (
	"fmt"

	"golang.org/x/time/rate"

	"medclaim/internal/config"
	"medclaim/internal/port"
)

// ProviderFactory is a function that creates a DocumentParser from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.DocumentParser, error)

// registry of parser provider factories, populated by init() in each provider package
// or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a parser provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewParser creates a DocumentParser from a provider config using the registered factory.
func NewParser(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewChain builds the parser used for claim documents: every configured provider with its
// own retry budget, tried in order behind a FallbackParser, throttled as a whole.
func NewChain(cfg *config.ParserConfig) (port.DocumentParser, error) {
	provCfgs := cfg.Providers()
	if len(provCfgs) == 0 {
		return nil, fmt.Errorf("no parser provider configured")
	}

	parsers := make([]port.DocumentParser, 0, len(provCfgs))
	names := make([]string, 0, len(provCfgs))
	for i := range provCfgs {
		pc := provCfgs[i]
		p, err := NewParser(&pc)
		if err != nil {
			return nil, err
		}
		parsers = append(parsers, NewRetryingParser(p, pc.Provider, pc.MaxRetries, defaultRetryBackoff))
		names = append(names, pc.Provider)
	}

	var chain port.DocumentParser
	if len(parsers) == 1 {
		chain = parsers[0]
	} else {
		chain = NewFallbackParser(parsers, names)
	}

	if cfg.RequestsPerSecond > 0 {
		chain = NewThrottledParser(chain, rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	return chain, nil
}
