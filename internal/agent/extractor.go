package agent

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"medclaim/internal/domain"
	"medclaim/internal/parser"
	"medclaim/internal/port"
)

// ExtractionAgent pulls the fields relevant to a document's category.
type ExtractionAgent struct {
	parser port.DocumentParser
}

// NewExtractionAgent creates an ExtractionAgent backed by the given parser.
func NewExtractionAgent(p port.DocumentParser) *ExtractionAgent {
	return &ExtractionAgent{parser: p}
}

// Extract returns the fields found in doc. On failure the result carries only docType
// with every field empty and a confidence of 0.
func (a *ExtractionAgent) Extract(ctx context.Context, doc domain.ClaimDocument, docType domain.DocumentType) domain.ExtractedData {
	empty := domain.ExtractedData{DocumentType: docType}

	out, err := a.parser.Parse(ctx, port.ParseInput{
		FileBytes:   doc.Data,
		ContentType: doc.ContentType,
		Prompt:      parser.BuildExtractionPrompt(docType),
	})
	if err != nil {
		zap.L().Warn("agent.ExtractionAgent.Extract: parser failed",
			zap.String("file", doc.Name),
			zap.String("document_type", string(docType)),
			zap.Error(err))
		return empty
	}

	data, err := decodeExtraction(out.Raw)
	if err != nil {
		zap.L().Warn("agent.ExtractionAgent.Extract: unexpected output",
			zap.String("file", doc.Name), zap.Error(err))
		return empty
	}
	data.DocumentType = docType
	return data
}

// decodeExtraction reads model output leniently: string fields accept numbers, blank
// strings become null, amounts accept numeric strings and confidence is clamped to [0,1].
func decodeExtraction(raw json.RawMessage) (domain.ExtractedData, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.ExtractedData{}, err
	}

	var data domain.ExtractedData
	data.PatientName = stringField(fields["patient_name"])
	data.AdmissionDate = stringField(fields["admission_date"])
	data.DischargeDate = stringField(fields["discharge_date"])
	data.HospitalName = stringField(fields["hospital_name"])
	data.PolicyNumber = stringField(fields["policy_number"])
	data.Diagnosis = stringField(fields["diagnosis"])

	if v, ok := fields["total_amount"]; ok {
		_ = data.TotalAmount.UnmarshalJSON(v)
	}
	if v, ok := fields["confidence_score"]; ok {
		_ = data.ConfidenceScore.UnmarshalJSON(v)
	}
	data.ConfidenceScore = clamp01(data.ConfidenceScore)

	return data, nil
}

func stringField(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return domain.StringPtr(strings.TrimSpace(s))
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return domain.StringPtr(n.String())
	}
	return nil
}

func clamp01(f domain.FlexFloat) domain.FlexFloat {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
