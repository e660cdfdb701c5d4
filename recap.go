package recap

import (
	"context"
	"io"

	"github.com/recapkit/recap/generator"
	"github.com/recapkit/recap/internal/service/distribution"
	"github.com/recapkit/recap/internal/service/intake"
	"github.com/recapkit/recap/internal/service/summary"
	"github.com/recapkit/recap/mailer"
	"github.com/recapkit/recap/store"
)

// App wires the transcript intake, summary lifecycle, and email
// distribution services behind one surface. Collaborator clients are
// constructed once at process start and held for the process
// lifetime.
type App struct {
	summary      *summary.Service
	distribution *distribution.Service
	intake       *intake.Service
	store        store.Store
}

func (a *App) ReadTranscript(filename string, meetingTitle string, r io.Reader) (intake.Transcript, error) {
	return a.intake.FromFile(filename, meetingTitle, r)
}

func (a *App) GenerateSummary(ctx context.Context, transcript string, customPrompt string) (string, error) {
	return a.summary.Generate(ctx, transcript, customPrompt)
}

func (a *App) SaveSummary(ctx context.Context, transcript string, customPrompt string, summaryText string, meetingTitle string) (string, error) {
	return a.summary.Create(ctx, transcript, customPrompt, summaryText, meetingTitle)
}

func (a *App) UpdateSummary(ctx context.Context, id string, fields store.Fields) (*store.Record, error) {
	return a.summary.Update(ctx, id, fields)
}

func (a *App) GetSummary(ctx context.Context, id string) (*store.Record, error) {
	return a.summary.Get(ctx, id)
}

func (a *App) SendSummary(ctx context.Context, recipients []string, subject string, body string, meetingTitle string) error {
	return a.distribution.Distribute(ctx, recipients, subject, body, meetingTitle)
}

func (a *App) Templates() []summary.Template {
	return summary.Templates()
}

func (a *App) Close(ctx context.Context) error {
	return a.store.Close(ctx)
}

func New(
	g generator.Generator,
	st store.Store,
	m mailer.Mailer,
) *App {
	app := &App{
		summary:      summary.New(g, st),
		distribution: distribution.New(m),
		intake:       intake.New(),
		store:        st,
	}

	return app
}
