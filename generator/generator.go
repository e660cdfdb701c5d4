package generator

import (
	"context"
	"errors"
)

// ErrNoContent is returned when the model replied without any usable
// text. Callers decide whether that is fatal.
var ErrNoContent = errors.New("no content in model response")

type Generator interface {
	Generate(ctx context.Context, system string, prompt string) (string, error)
}
