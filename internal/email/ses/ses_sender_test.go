package ses

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	return &sesv2.SendEmailOutput{}, f.err
}

func TestSendClaimNotification(t *testing.T) {
	fake := &fakeSES{}
	s := newSender(fake, "claims@example.com", "Claims Bot", "https://claims.example.com/")

	err := s.SendClaimNotification(context.Background(), "reviewer@example.com", port.ClaimNotification{
		ClaimID:          "0b7e9b7c-4d0c-4f2a-8d8e-5a0b8b1f7c21",
		Status:           domain.ClaimStatusManualReview,
		Reason:           "Discrepancies detected",
		Discrepancies:    []string{"Name mismatch: ['john <doe>', 'jane']"},
		FileNames:        []string{"bill.pdf", "card.png"},
		MissingDocuments: nil,
	})

	require.NoError(t, err)
	in := fake.input
	require.NotNil(t, in)
	assert.Equal(t, "Claims Bot <claims@example.com>", *in.FromEmailAddress)
	assert.Equal(t, []string{"reviewer@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Claim 0b7e9b7c needs attention: manual_review", *in.Content.Simple.Subject.Data)

	htmlBody := *in.Content.Simple.Body.Html.Data
	assert.Contains(t, htmlBody, "john &lt;doe&gt;")
	assert.Contains(t, htmlBody, "https://claims.example.com/api/v1/claims/0b7e9b7c-4d0c-4f2a-8d8e-5a0b8b1f7c21")
	assert.NotContains(t, htmlBody, "Missing documents")

	textBody := *in.Content.Simple.Body.Text.Data
	assert.Contains(t, textBody, "Discrepancies:\n  - Name mismatch")
	assert.Contains(t, textBody, "Files: bill.pdf, card.png")
}

func TestSendClaimNotification_Error(t *testing.T) {
	s := newSender(&fakeSES{err: errors.New("throttled")}, "a@example.com", "A", "http://localhost")

	err := s.SendClaimNotification(context.Background(), "r@example.com", port.ClaimNotification{ClaimID: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SES SendEmail")
}
