package intake

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/recapkit/recap/internal/service"
)

const maxTranscriptSize = 1 << 20 // 1MB

// Transcript is a validated transcript/title pair ready for the
// summary pipeline.
type Transcript struct {
	Text         string
	MeetingTitle string
}

type Service struct {
	maxBytes int64
}

// FromText accepts a pasted transcript.
func (s *Service) FromText(text string, meetingTitle string) (Transcript, error) {
	if len(strings.TrimSpace(text)) == 0 {
		return Transcript{}, fmt.Errorf("%w: transcript is required", service.ErrInvalidInput)
	}

	return Transcript{
		Text:         text,
		MeetingTitle: strings.TrimSpace(meetingTitle),
	}, nil
}

// FromFile accepts an uploaded .txt transcript. When no title is
// given, one is derived from the file name.
func (s *Service) FromFile(filename string, meetingTitle string, r io.Reader) (Transcript, error) {
	base := filepath.Base(filename)

	if !strings.HasSuffix(strings.ToLower(base), ".txt") {
		return Transcript{}, fmt.Errorf("%w: only .txt transcripts are supported", service.ErrInvalidInput)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return Transcript{}, fmt.Errorf("read transcript: %w", err)
	}

	if int64(len(data)) > s.maxBytes {
		return Transcript{}, fmt.Errorf("%w: transcript exceeds %d bytes", service.ErrInvalidInput, s.maxBytes)
	}

	text := string(data)
	if len(strings.TrimSpace(text)) == 0 {
		return Transcript{}, fmt.Errorf("%w: transcript file is empty", service.ErrInvalidInput)
	}

	title := strings.TrimSpace(meetingTitle)
	if len(title) == 0 {
		title = base[:len(base)-len(".txt")]
	}

	return Transcript{
		Text:         text,
		MeetingTitle: title,
	}, nil
}

func New() *Service {
	return &Service{
		maxBytes: maxTranscriptSize,
	}
}
