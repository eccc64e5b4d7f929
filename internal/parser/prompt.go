package parser

import (
	"strings"

	"medclaim/internal/domain"
)

// extractionFields lists the fields requested for each document type.
var extractionFields = map[domain.DocumentType][]string{
	domain.DocumentTypeBill:             {"patient_name", "total_amount", "hospital_name", "admission_date"},
	domain.DocumentTypeDischargeSummary: {"patient_name", "admission_date", "discharge_date", "diagnosis"},
	domain.DocumentTypeIDCard:           {"patient_name", "policy_number"},
	domain.DocumentTypePharmacyBill:     {"patient_name", "total_amount"},
	domain.DocumentTypeClaimForm:        {"patient_name", "total_amount"},
}

// ExtractionFields returns the fields requested for docType, or nil for unknown types.
func ExtractionFields(docType domain.DocumentType) []string {
	return extractionFields[docType]
}

// BuildClassificationPrompt returns the prompt that asks for a single document category.
func BuildClassificationPrompt() string {
	var b strings.Builder
	b.WriteString("Analyze this image/PDF. Classify it into exactly one of these categories:\n")
	for _, t := range domain.ClassifiableDocumentTypes {
		b.WriteString("- ")
		b.WriteString(string(t))
		b.WriteString("\n")
	}
	b.WriteString(`
Return a JSON object with a single key "document_type".
Example: {"document_type": "bill"}`)
	return b.String()
}

// BuildExtractionPrompt returns the field extraction prompt for a classified document.
func BuildExtractionPrompt(docType domain.DocumentType) string {
	base := "Extract all visible text."
	if fields := ExtractionFields(docType); len(fields) > 0 {
		base = "Extract: " + strings.Join(fields, ", ") + ". Return JSON."
	}
	return base + `
Also return a 'confidence_score' (0.0 to 1.0).
If fields are missing, use null.
Ensure keys match: patient_name, admission_date, discharge_date, total_amount, hospital_name, policy_number, diagnosis.
Return ONLY valid JSON with no markdown formatting.`
}
