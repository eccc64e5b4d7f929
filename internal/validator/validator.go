package validator

import (
	"context"

	"medclaim/internal/domain"
	"medclaim/internal/validator/claimrules"
)

// Validator is the interface for a single claim rule.
type Validator interface {
	Validate(ctx context.Context, docs []domain.ExtractedData) []claimrules.Finding
	RuleKey() string
	RuleName() string
}
