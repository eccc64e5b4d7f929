package domain

// DocumentType is the category a claim document is classified into.
type DocumentType string

const (
	DocumentTypeBill             DocumentType = "bill"
	DocumentTypeDischargeSummary DocumentType = "discharge_summary"
	DocumentTypeIDCard           DocumentType = "id_card"
	DocumentTypePharmacyBill     DocumentType = "pharmacy_bill"
	DocumentTypeClaimForm        DocumentType = "claim_form"
	DocumentTypeUnknown          DocumentType = "unknown"
)

// ClassifiableDocumentTypes are the categories a classifier may choose from, in prompt order.
var ClassifiableDocumentTypes = []DocumentType{
	DocumentTypeBill,
	DocumentTypeDischargeSummary,
	DocumentTypeIDCard,
	DocumentTypePharmacyBill,
	DocumentTypeClaimForm,
}

// RequiredDocumentTypes must all be present for a claim to be processed.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeBill,
	DocumentTypeDischargeSummary,
	DocumentTypeIDCard,
}

// ParseDocumentType maps s to a known DocumentType, or DocumentTypeUnknown.
func ParseDocumentType(s string) DocumentType {
	for _, t := range ClassifiableDocumentTypes {
		if string(t) == s {
			return t
		}
	}
	return DocumentTypeUnknown
}

// ClaimStatus is the verdict of a processed claim.
type ClaimStatus string

const (
	ClaimStatusApproved     ClaimStatus = "approved"
	ClaimStatusRejected     ClaimStatus = "rejected"
	ClaimStatusManualReview ClaimStatus = "manual_review"
)

// ExportFormat selects the claim history export encoding.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// SupportedContentTypes are MIME types the LLM providers accept for claim documents.
var SupportedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}
