package email

import (
	"context"
	"fmt"

	domainEmail "opportunity_followup_reminders/internal/domain/email"

	"github.com/resend/resend-go/v2"
)

// ResendClient implements the email.Sender interface using the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

func NewResendClient(apiKey, from string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers a single email via Resend.
func (c *ResendClient) Send(ctx context.Context, msg domainEmail.Message) error {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	if _, err := c.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
