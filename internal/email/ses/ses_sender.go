package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"medclaim/internal/port"
)

// emailAPI is the subset of the SES client used here.
type emailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	client      emailAPI
	fromAddress string
	fromName    string
	reviewURL   string
}

// NewSESSender creates a new SES-backed EmailSender. reviewURL is the base of the
// claim history API linked from each notification.
func NewSESSender(region, fromAddress, fromName, reviewURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newSender(sesv2.NewFromConfig(cfg), fromAddress, fromName, reviewURL), nil
}

func newSender(client emailAPI, fromAddress, fromName, reviewURL string) *sesSender {
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		reviewURL:   strings.TrimRight(reviewURL, "/"),
	}
}

func (s *sesSender) SendClaimNotification(ctx context.Context, toEmail string, n port.ClaimNotification) error {
	subject := fmt.Sprintf("Claim %s needs attention: %s", shortID(n.ClaimID), n.Status)
	link := fmt.Sprintf("%s/api/v1/claims/%s", s.reviewURL, n.ClaimID)
	htmlBody := buildNotificationHTML(n, link)
	textBody := buildNotificationText(n, link)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func buildNotificationText(n port.ClaimNotification, link string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Claim %s was marked %s: %s\n\n", n.ClaimID, n.Status, n.Reason)
	fmt.Fprintf(&b, "Files: %s\n", strings.Join(n.FileNames, ", "))
	writeTextList(&b, "Missing documents", n.MissingDocuments)
	writeTextList(&b, "Discrepancies", n.Discrepancies)
	fmt.Fprintf(&b, "\nDetails: %s\n", link)
	return b.String()
}

func writeTextList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}

func buildNotificationHTML(n port.ClaimNotification, link string) string {
	list := func(title string, items []string) string {
		if len(items) == 0 {
			return ""
		}
		var b strings.Builder
		fmt.Fprintf(&b, `<h3 style="color: #333;">%s</h3><ul>`, html.EscapeString(title))
		for _, it := range items {
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(it))
		}
		b.WriteString("</ul>")
		return b.String()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Claim marked %s</h2>
  <p>%s</p>
  <p style="color: #666;">Files: %s</p>
  %s
  %s
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Open Claim</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Claim %s - AI Claim Processor</p>
</body>
</html>`,
		html.EscapeString(string(n.Status)),
		html.EscapeString(n.Reason),
		html.EscapeString(strings.Join(n.FileNames, ", ")),
		list("Missing documents", n.MissingDocuments),
		list("Discrepancies", n.Discrepancies),
		html.EscapeString(link),
		html.EscapeString(n.ClaimID),
	)
}
