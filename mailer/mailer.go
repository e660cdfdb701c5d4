package mailer

import "context"

// Message is one outbound email. Fan-out to the recipient list is the
// relay's concern.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
