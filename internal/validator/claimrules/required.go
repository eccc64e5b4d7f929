package claimrules

import (
	"fmt"

	"medclaim/internal/domain"
)

func requiredDocuments(docs []domain.ExtractedData) []Finding {
	found := make(map[domain.DocumentType]bool, len(docs))
	for i := range docs {
		found[docs[i].DocumentType] = true
	}

	var findings []Finding
	for _, req := range domain.RequiredDocumentTypes {
		if !found[req] {
			findings = append(findings, missing(fmt.Sprintf("Missing required document: %s", req)))
		}
	}
	return findings
}
