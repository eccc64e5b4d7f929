package port

import (
	"context"

	"medclaim/internal/domain"
)

// ClaimNotification describes a claim that needs a reviewer's attention.
type ClaimNotification struct {
	ClaimID          string
	Status           domain.ClaimStatus
	Reason           string
	MissingDocuments []string
	Discrepancies    []string
	FileNames        []string
}

// EmailSender defines the contract for sending reviewer emails.
type EmailSender interface {
	SendClaimNotification(ctx context.Context, toEmail string, n ClaimNotification) error
}
