package noop

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"medclaim/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications instead of sending them.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendClaimNotification(_ context.Context, toEmail string, n port.ClaimNotification) error {
	zap.L().Info("[NOOP EMAIL] claim notification",
		zap.String("to", toEmail),
		zap.String("claim_id", n.ClaimID),
		zap.String("status", string(n.Status)),
		zap.String("reason", n.Reason),
		zap.String("missing", strings.Join(n.MissingDocuments, "; ")),
		zap.String("discrepancies", strings.Join(n.Discrepancies, "; ")))
	return nil
}
