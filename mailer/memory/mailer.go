package memory

import (
	"context"
	"sync"

	"github.com/recapkit/recap/mailer"
)

// Mailer records messages instead of delivering them. Used by tests
// and as the --mailer memory backend.
type Mailer struct {
	options mailer.Options
	sent    []mailer.Message
	mtx     sync.Mutex
}

func (m *Mailer) Send(ctx context.Context, msg mailer.Message) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.sent = append(m.sent, msg)

	return nil
}

func (m *Mailer) Sent() []mailer.Message {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	cpy := make([]mailer.Message, len(m.sent))
	copy(cpy, m.sent)

	return cpy
}

func NewMailer(opts ...mailer.Option) *Mailer {
	options := mailer.NewOptions(opts...)

	m := &Mailer{
		options: options,
		sent:    []mailer.Message{},
	}

	return m
}
