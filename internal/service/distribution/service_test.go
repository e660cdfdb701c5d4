package distribution

import (
	"context"
	"errors"
	"testing"

	"github.com/recapkit/recap/internal/service"
	"github.com/recapkit/recap/mailer"
	memorymailer "github.com/recapkit/recap/mailer/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingMailer struct{}

func (m *failingMailer) Send(ctx context.Context, msg mailer.Message) error {
	return errors.New("smtp: connection refused")
}

func TestDistribute(t *testing.T) {
	m := memorymailer.NewMailer()
	svc := New(m)

	err := svc.Distribute(context.Background(), []string{"a@b.com", "c@d.org"}, "Custom subject", "Discussed Q3 roadmap", "Planning")
	require.NoError(t, err)

	sent := m.Sent()
	require.Len(t, sent, 1, "one outbound message per call")
	assert.Equal(t, []string{"a@b.com", "c@d.org"}, sent[0].To)
	assert.Equal(t, "Custom subject", sent[0].Subject)
	assert.Contains(t, sent[0].Text, "Discussed Q3 roadmap")
	assert.Contains(t, sent[0].HTML, "Discussed Q3 roadmap")
}

func TestDistributeSubjectDefaults(t *testing.T) {
	tests := []struct {
		name         string
		subject      string
		meetingTitle string
		expected     string
	}{
		{
			name:     "no subject, no title",
			expected: "Meeting Summary",
		},
		{
			name:         "no subject, title known",
			meetingTitle: "Planning",
			expected:     "Meeting Summary: Planning",
		},
		{
			name:         "explicit subject wins",
			subject:      "Read this",
			meetingTitle: "Planning",
			expected:     "Read this",
		},
		{
			name:         "blank subject falls back",
			subject:      "   ",
			meetingTitle: "Planning",
			expected:     "Meeting Summary: Planning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := memorymailer.NewMailer()
			svc := New(m)

			err := svc.Distribute(context.Background(), []string{"a@b.com"}, tt.subject, "body", tt.meetingTitle)
			require.NoError(t, err)

			sent := m.Sent()
			require.Len(t, sent, 1)
			assert.Equal(t, tt.expected, sent[0].Subject)
		})
	}
}

func TestDistributeRejectsInvalidAddresses(t *testing.T) {
	m := memorymailer.NewMailer()
	svc := New(m)

	err := svc.Distribute(context.Background(), []string{"a@b.com", "not-an-email", "x y@z.com"}, "", "body", "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	var invalid *InvalidRecipientsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"not-an-email", "x y@z.com"}, invalid.Recipients)

	assert.Empty(t, m.Sent(), "nothing may be sent when any address is invalid")
}

func TestDistributeRejectsEmptyRecipients(t *testing.T) {
	m := memorymailer.NewMailer()
	svc := New(m)

	err := svc.Distribute(context.Background(), nil, "", "body", "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Empty(t, m.Sent())
}

func TestDistributeRejectsBlankBody(t *testing.T) {
	m := memorymailer.NewMailer()
	svc := New(m)

	err := svc.Distribute(context.Background(), []string{"a@b.com"}, "", "   \n ", "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Empty(t, m.Sent())
}

func TestDistributeDeliveryFailure(t *testing.T) {
	svc := New(&failingMailer{})

	err := svc.Distribute(context.Background(), []string{"a@b.com"}, "", "body", "")
	assert.ErrorIs(t, err, service.ErrDelivery)
	assert.NotContains(t, err.Error(), "connection refused", "relay detail must not leak")
}
