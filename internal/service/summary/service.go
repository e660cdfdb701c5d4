package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/recapkit/recap/generator"
	"github.com/recapkit/recap/internal/service"
	"github.com/recapkit/recap/store"
)

const (
	systemPrompt = "You are an AI assistant that helps summarize meeting transcripts. " +
		"Follow the user's specific instructions for formatting and focus areas. " +
		"Always provide clear, structured, and professional summaries."

	fallbackSummary = "Unable to generate summary"

	defaultTitle = "Untitled Meeting"
)

// Service owns the summary lifecycle: generation against the model,
// then create/update of the persisted record.
type Service struct {
	generator generator.Generator
	store     store.Store
}

// Generate asks the model for a summary of the transcript under the
// caller's instruction. An empty model reply degrades to a fixed
// placeholder so the caller can still edit and save.
func (s *Service) Generate(ctx context.Context, transcript string, customPrompt string) (string, error) {
	transcript = strings.TrimSpace(transcript)
	customPrompt = strings.TrimSpace(customPrompt)

	if len(transcript) == 0 || len(customPrompt) == 0 {
		return "", fmt.Errorf("%w: transcript and custom prompt are required", service.ErrInvalidInput)
	}

	prompt := fmt.Sprintf(
		"Please analyze the following meeting transcript and %s:\n\nTranscript:\n%s",
		customPrompt,
		transcript,
	)

	result, err := s.generator.Generate(ctx, systemPrompt, prompt)
	if errors.Is(err, generator.ErrNoContent) {
		return fallbackSummary, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "summary generation failed", "error", err)
		return "", service.ErrGeneration
	}

	return result, nil
}

// Create persists a new record and returns its store-assigned id.
func (s *Service) Create(ctx context.Context, transcript string, customPrompt string, summaryText string, meetingTitle string) (string, error) {
	summaryText = strings.TrimSpace(summaryText)
	if len(summaryText) == 0 {
		return "", fmt.Errorf("%w: summary is required", service.ErrInvalidInput)
	}

	meetingTitle = strings.TrimSpace(meetingTitle)
	if len(meetingTitle) == 0 {
		meetingTitle = defaultTitle
	}

	id, err := s.store.Insert(ctx, store.Record{
		Transcript:   transcript,
		CustomPrompt: customPrompt,
		Summary:      summaryText,
		MeetingTitle: meetingTitle,
	})
	if err != nil {
		slog.ErrorContext(ctx, "summary insert failed", "error", err)
		return "", service.ErrPersistence
	}

	return id, nil
}

// Update merges the provided fields into an existing record. Omitted
// fields keep their stored values; a provided-but-blank summary is
// rejected before the store is touched.
func (s *Service) Update(ctx context.Context, id string, fields store.Fields) (*store.Record, error) {
	if err := s.store.CheckId(id); err != nil {
		return nil, err
	}

	if fields.Summary.Provided() {
		trimmed := strings.TrimSpace(fields.Summary.Value())
		if len(trimmed) == 0 {
			return nil, fmt.Errorf("%w: summary must not be blank", service.ErrInvalidInput)
		}
		fields.Summary = store.Set(trimmed)
	}

	rec, err := s.store.UpdateById(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidId) {
			return nil, err
		}
		slog.ErrorContext(ctx, "summary update failed", "error", err, "id", id)
		return nil, service.ErrPersistence
	}

	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (*store.Record, error) {
	if err := s.store.CheckId(id); err != nil {
		return nil, err
	}

	rec, err := s.store.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidId) {
			return nil, err
		}
		slog.ErrorContext(ctx, "summary lookup failed", "error", err, "id", id)
		return nil, service.ErrPersistence
	}

	return rec, nil
}

func New(g generator.Generator, st store.Store) *Service {
	if g == nil {
		panic("generator is required")
	}

	if st == nil {
		panic("store is required")
	}

	return &Service{
		generator: g,
		store:     st,
	}
}
