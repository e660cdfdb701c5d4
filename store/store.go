package store

import (
	"context"
	"errors"
)

var (
	ErrInvalidId = errors.New("malformed record id")
	ErrNotFound  = errors.New("record not found")
)

// Store is a keyed document store for summary records. Identity is
// owned by the store: Insert assigns the id and the creation
// timestamps, UpdateById merges the provided fields atomically and
// resets UpdatedAt in the same call.
type Store interface {
	Insert(ctx context.Context, rec Record) (string, error)
	FindById(ctx context.Context, id string) (*Record, error)
	UpdateById(ctx context.Context, id string, fields Fields) (*Record, error)
	CheckId(id string) error
	Close(ctx context.Context) error
}
