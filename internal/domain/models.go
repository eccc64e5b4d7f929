package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExtractedData holds the fields pulled out of a single classified document.
// String fields are nil when the document did not contain them and are emitted as JSON null.
type ExtractedData struct {
	DocumentType    DocumentType `json:"document_type"`
	PatientName     *string      `json:"patient_name"`
	AdmissionDate   *string      `json:"admission_date"`
	DischargeDate   *string      `json:"discharge_date"`
	TotalAmount     FlexFloat    `json:"total_amount"`
	HospitalName    *string      `json:"hospital_name"`
	PolicyNumber    *string      `json:"policy_number"`
	Diagnosis       *string      `json:"diagnosis"`
	ConfidenceScore FlexFloat    `json:"confidence_score"`
}

// HasData reports whether any optional field carries a value.
func (d *ExtractedData) HasData() bool {
	for _, s := range []*string{d.PatientName, d.AdmissionDate, d.DischargeDate, d.HospitalName, d.PolicyNumber, d.Diagnosis} {
		if StringValue(s) != "" {
			return true
		}
	}
	return d.TotalAmount > 0
}

// ValidationResult lists the problems found across the documents of one claim.
type ValidationResult struct {
	MissingDocuments []string `json:"missing_documents"`
	Discrepancies    []string `json:"discrepancies"`
}

// ClaimDecision is the verdict for a claim with a human-readable reason.
type ClaimDecision struct {
	Status ClaimStatus `json:"status"`
	Reason string      `json:"reason"`
}

// ProcessingResult is the response body of POST /process-claim.
type ProcessingResult struct {
	Documents     []ExtractedData  `json:"documents"`
	Validation    ValidationResult `json:"validation"`
	ClaimDecision *ClaimDecision   `json:"claim_decision"`
}

// ClaimRecord is a processed claim as persisted for history and export.
type ClaimRecord struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Status        ClaimStatus     `db:"status" json:"status"`
	Reason        string          `db:"reason" json:"reason"`
	DocumentCount int             `db:"document_count" json:"document_count"`
	FileNames     StringList      `db:"file_names" json:"file_names"`
	Result        json.RawMessage `db:"result" json:"result"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// DecodeResult unmarshals the stored ProcessingResult.
func (r *ClaimRecord) DecodeResult() (*ProcessingResult, error) {
	var res ProcessingResult
	if err := json.Unmarshal(r.Result, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ClaimDocument is one uploaded file of a claim submission.
type ClaimDocument struct {
	Name        string
	ContentType string
	Data        []byte
}
