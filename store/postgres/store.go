package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/recapkit/recap/store"
	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

var DRIVER string

func init() {
	driver, err := otelsql.Register(
		"postgres",
		otelsql.TraceQueryWithoutArgs(),
		otelsql.TraceRowsClose(),
		otelsql.TraceRowsAffected(),
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		detail := "failed to register pg summary store with otel"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	DRIVER = driver
}

const schema = `
	CREATE TABLE IF NOT EXISTS summaries (
		id UUID PRIMARY KEY,
		transcript TEXT NOT NULL DEFAULT '',
		custom_prompt TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL,
		meeting_title TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)
`

type postgresStore struct {
	options store.Options
	conn    *sql.DB
}

func (p *postgresStore) Insert(ctx context.Context, rec store.Record) (string, error) {
	id := uuid.New().String()

	now := time.Now().UTC()

	query := `
		INSERT INTO summaries (
			id,
			transcript,
			custom_prompt,
			summary,
			meeting_title,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := p.conn.ExecContext(
		ctx,
		query,
		id,
		rec.Transcript,
		rec.CustomPrompt,
		rec.Summary,
		rec.MeetingTitle,
		now,
		now,
	); err != nil {
		return "", fmt.Errorf("insert summary: %w", err)
	}

	return id, nil
}

func (p *postgresStore) FindById(ctx context.Context, id string) (*store.Record, error) {
	if err := p.CheckId(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, transcript, custom_prompt, summary, meeting_title, created_at, updated_at
		FROM summaries
		WHERE id = $1
	`

	rec, err := scanRecord(p.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find summary: %w", err)
	}

	return rec, nil
}

// UpdateById merges in a single UPDATE statement: omitted fields are
// passed as NULL and COALESCE keeps the stored value, so the merge is
// atomic at the record level.
func (p *postgresStore) UpdateById(ctx context.Context, id string, fields store.Fields) (*store.Record, error) {
	if err := p.CheckId(id); err != nil {
		return nil, err
	}

	query := `
		UPDATE summaries SET
			summary = COALESCE($2, summary),
			custom_prompt = COALESCE($3, custom_prompt),
			transcript = COALESCE($4, transcript),
			meeting_title = COALESCE($5, meeting_title),
			updated_at = $6
		WHERE id = $1
		RETURNING id, transcript, custom_prompt, summary, meeting_title, created_at, updated_at
	`

	rec, err := scanRecord(p.conn.QueryRowContext(
		ctx,
		query,
		id,
		nullable(fields.Summary),
		nullable(fields.CustomPrompt),
		nullable(fields.Transcript),
		nullable(fields.MeetingTitle),
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("update summary: %w", err)
	}

	return rec, nil
}

func (p *postgresStore) CheckId(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", store.ErrInvalidId, id)
	}
	return nil
}

func (p *postgresStore) Close(ctx context.Context) error {
	return p.conn.Close()
}

func scanRecord(row *sql.Row) (*store.Record, error) {
	var rec store.Record
	if err := row.Scan(
		&rec.Id,
		&rec.Transcript,
		&rec.CustomPrompt,
		&rec.Summary,
		&rec.MeetingTitle,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func nullable(f store.Field) sql.NullString {
	return sql.NullString{String: f.Value(), Valid: f.Provided()}
}

func NewStore(opts ...store.Option) (*postgresStore, error) {
	options := store.NewOptions(opts...)

	conn, err := sql.Open(DRIVER, options.Location)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if _, err := conn.ExecContext(options.Context, schema); err != nil {
		return nil, fmt.Errorf("ensure summaries table: %w", err)
	}

	p := &postgresStore{
		options: options,
		conn:    conn,
	}

	return p, nil
}
