package validator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"medclaim/internal/domain"
	"medclaim/internal/validator/claimrules"
)

const (
	reasonMissing       = "Missing required documents"
	reasonDiscrepancies = "Discrepancies detected"
	reasonConsistent    = "All documents consistent"
)

// Engine runs the enabled claim rules and turns their findings into a decision.
type Engine struct {
	rules []Validator
}

// NewEngine creates an engine running the rules named by keys, in that order. An empty
// keys list enables every registered rule.
func NewEngine(registry *Registry, keys []string) (*Engine, error) {
	if len(keys) == 0 {
		return &Engine{rules: registry.All()}, nil
	}
	rules := make([]Validator, 0, len(keys))
	for _, k := range keys {
		v := registry.Get(k)
		if v == nil {
			return nil, fmt.Errorf("unknown validation rule: %s", k)
		}
		rules = append(rules, v)
	}
	return &Engine{rules: rules}, nil
}

// Validate checks docs as one claim. The returned lists are never nil.
func (e *Engine) Validate(ctx context.Context, docs []domain.ExtractedData) (domain.ValidationResult, domain.ClaimDecision) {
	result := domain.ValidationResult{
		MissingDocuments: []string{},
		Discrepancies:    []string{},
	}

	for _, rule := range e.rules {
		for _, f := range rule.Validate(ctx, docs) {
			switch f.Kind {
			case claimrules.FindingMissing:
				result.MissingDocuments = append(result.MissingDocuments, f.Message)
			default:
				result.Discrepancies = append(result.Discrepancies, f.Message)
			}
		}
	}

	decision := Decide(result)
	zap.L().Debug("validator.Engine.Validate: decided",
		zap.String("status", string(decision.Status)),
		zap.Int("missing", len(result.MissingDocuments)),
		zap.Int("discrepancies", len(result.Discrepancies)))
	return result, decision
}

// Decide maps validation findings to a claim decision. Missing documents outrank discrepancies.
func Decide(result domain.ValidationResult) domain.ClaimDecision {
	switch {
	case len(result.MissingDocuments) > 0:
		return domain.ClaimDecision{Status: domain.ClaimStatusRejected, Reason: reasonMissing}
	case len(result.Discrepancies) > 0:
		return domain.ClaimDecision{Status: domain.ClaimStatusManualReview, Reason: reasonDiscrepancies}
	default:
		return domain.ClaimDecision{Status: domain.ClaimStatusApproved, Reason: reasonConsistent}
	}
}
