package smtp

import (
	"context"
	"fmt"

	"github.com/recapkit/recap/mailer"
	mail "github.com/wneessen/go-mail"
)

type smtpMailer struct {
	options mailer.Options
	client  *mail.Client
}

func (m *smtpMailer) Send(ctx context.Context, msg mailer.Message) error {
	out := mail.NewMsg()

	if err := out.From(m.options.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := out.To(msg.To...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}

	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Text)
	if len(msg.HTML) > 0 {
		out.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	return m.client.DialAndSendWithContext(ctx, out)
}

func NewMailer(opts ...mailer.Option) (*smtpMailer, error) {
	options := mailer.NewOptions(opts...)

	clientOpts := []mail.Option{
		mail.WithPort(options.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}

	if len(options.Username) > 0 {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(options.Username),
			mail.WithPassword(options.Password),
		)
	}

	client, err := mail.NewClient(options.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	m := &smtpMailer{
		options: options,
		client:  client,
	}

	return m, nil
}
