package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medclaim/internal/agent"
	"medclaim/internal/domain"
	"medclaim/internal/port"
	"medclaim/mocks"
)

var testDoc = domain.ClaimDocument{Name: "bill.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}

func output(raw string) *port.ParseOutput {
	return &port.ParseOutput{Raw: json.RawMessage(raw), ModelUsed: "test-model"}
}

func TestClassifierAgent_Classify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.DocumentType
	}{
		{"bill", `{"document_type":"bill"}`, domain.DocumentTypeBill},
		{"case and space", `{"document_type":" Discharge_Summary "}`, domain.DocumentTypeDischargeSummary},
		{"unlisted category", `{"document_type":"lab_report"}`, domain.DocumentTypeUnknown},
		{"missing key", `{}`, domain.DocumentTypeUnknown},
		{"wrong type", `{"document_type":7}`, domain.DocumentTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(mocks.MockDocumentParser)
			p.On("Parse", mock.Anything, mock.MatchedBy(func(in port.ParseInput) bool {
				return in.ContentType == "application/pdf" && strings.Contains(in.Prompt, "document_type")
			})).Return(output(tt.raw), nil)

			got := agent.NewClassifierAgent(p).Classify(context.Background(), testDoc)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifierAgent_ParserError(t *testing.T) {
	p := new(mocks.MockDocumentParser)
	p.On("Parse", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))

	got := agent.NewClassifierAgent(p).Classify(context.Background(), testDoc)

	assert.Equal(t, domain.DocumentTypeUnknown, got)
}

func TestExtractionAgent_Extract(t *testing.T) {
	p := new(mocks.MockDocumentParser)
	p.On("Parse", mock.Anything, mock.MatchedBy(func(in port.ParseInput) bool {
		return strings.HasPrefix(in.Prompt, "Extract: patient_name, total_amount, hospital_name, admission_date.")
	})).Return(output(`{
		"document_type": "id_card",
		"patient_name": " John Doe ",
		"total_amount": "1,250.50",
		"hospital_name": "City Hospital",
		"admission_date": "2024-01-10",
		"policy_number": null,
		"diagnosis": "",
		"confidence_score": 0.92
	}`), nil)

	got := agent.NewExtractionAgent(p).Extract(context.Background(), testDoc, domain.DocumentTypeBill)

	assert.Equal(t, domain.DocumentTypeBill, got.DocumentType)
	require.NotNil(t, got.PatientName)
	assert.Equal(t, "John Doe", *got.PatientName)
	assert.Equal(t, domain.FlexFloat(1250.5), got.TotalAmount)
	assert.Equal(t, "City Hospital", domain.StringValue(got.HospitalName))
	assert.Equal(t, "2024-01-10", domain.StringValue(got.AdmissionDate))
	assert.Nil(t, got.PolicyNumber)
	assert.Nil(t, got.Diagnosis)
	assert.Nil(t, got.DischargeDate)
	assert.InDelta(t, 0.92, float64(got.ConfidenceScore), 1e-9)
}

func TestExtractionAgent_LenientFields(t *testing.T) {
	p := new(mocks.MockDocumentParser)
	p.On("Parse", mock.Anything, mock.Anything).Return(output(`{"policy_number": 99812, "total_amount": "n/a", "confidence_score": 7}`), nil)

	got := agent.NewExtractionAgent(p).Extract(context.Background(), testDoc, domain.DocumentTypeIDCard)

	assert.Equal(t, "99812", domain.StringValue(got.PolicyNumber))
	assert.Equal(t, domain.FlexFloat(0), got.TotalAmount)
	assert.Equal(t, domain.FlexFloat(1), got.ConfidenceScore)
}

func TestExtractionAgent_NegativeConfidenceClamped(t *testing.T) {
	p := new(mocks.MockDocumentParser)
	p.On("Parse", mock.Anything, mock.Anything).Return(output(`{"confidence_score": -0.3}`), nil)

	got := agent.NewExtractionAgent(p).Extract(context.Background(), testDoc, domain.DocumentTypeBill)

	assert.Equal(t, domain.FlexFloat(0), got.ConfidenceScore)
}

func TestExtractionAgent_ParserErrorDegrades(t *testing.T) {
	p := new(mocks.MockDocumentParser)
	p.On("Parse", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	got := agent.NewExtractionAgent(p).Extract(context.Background(), testDoc, domain.DocumentTypeDischargeSummary)

	assert.Equal(t, domain.ExtractedData{DocumentType: domain.DocumentTypeDischargeSummary}, got)
	assert.False(t, got.HasData())
}

func TestExtractionAgent_UnknownTypeUsesGenericPrompt(t *testing.T) {
	p := new(mocks.MockDocumentParser)
	p.On("Parse", mock.Anything, mock.MatchedBy(func(in port.ParseInput) bool {
		return strings.HasPrefix(in.Prompt, "Extract all visible text.")
	})).Return(output(`{"confidence_score": 0.4}`), nil)

	got := agent.NewExtractionAgent(p).Extract(context.Background(), testDoc, domain.DocumentTypeUnknown)

	assert.Equal(t, domain.DocumentTypeUnknown, got.DocumentType)
	p.AssertExpectations(t)
}
