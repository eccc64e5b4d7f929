package claimrules

import (
	"context"

	"medclaim/internal/domain"
)

const (
	RuleRequiredDocuments       = "required_documents"
	RulePatientNameConsistency  = "patient_name_consistency"
	RuleAdmissionDischargeOrder = "admission_discharge_order"
)

// BuiltinValidator wraps a rule function and its metadata for the registry.
type BuiltinValidator struct {
	key  string
	name string
	fn   func(context.Context, []domain.ExtractedData) []Finding
}

func (b *BuiltinValidator) Validate(ctx context.Context, docs []domain.ExtractedData) []Finding {
	return b.fn(ctx, docs)
}
func (b *BuiltinValidator) RuleKey() string  { return b.key }
func (b *BuiltinValidator) RuleName() string { return b.name }

// AllBuiltinValidators returns the built-in claim rules in evaluation order.
func AllBuiltinValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		{
			key:  RuleRequiredDocuments,
			name: "Required Documents Present",
			fn:   func(_ context.Context, docs []domain.ExtractedData) []Finding { return requiredDocuments(docs) },
		},
		{
			key:  RulePatientNameConsistency,
			name: "Patient Name Consistency",
			fn:   func(_ context.Context, docs []domain.ExtractedData) []Finding { return patientNameConsistency(docs) },
		},
		{
			key:  RuleAdmissionDischargeOrder,
			name: "Admission Before Discharge",
			fn:   func(_ context.Context, docs []domain.ExtractedData) []Finding { return admissionDischargeOrder(docs) },
		},
	}
}
