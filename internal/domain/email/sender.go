package email

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender defines an interface for delivering email messages. This decouples
// the reminder logic from the concrete email provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
