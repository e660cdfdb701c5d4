package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/recapkit/recap/store"
)

type memoryStore struct {
	options store.Options
	records map[string]store.Record
	mtx     sync.RWMutex
}

func (s *memoryStore) Insert(ctx context.Context, rec store.Record) (string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	id := uuid.New().String()

	now := time.Now().UTC()

	rec.Id = id
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.records[id] = rec

	return id, nil
}

func (s *memoryStore) FindById(ctx context.Context, id string) (*store.Record, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	rec, exists := s.records[id]
	if !exists {
		return nil, store.ErrNotFound
	}

	return &rec, nil
}

func (s *memoryStore) UpdateById(ctx context.Context, id string, fields store.Fields) (*store.Record, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	rec, exists := s.records[id]
	if !exists {
		return nil, store.ErrNotFound
	}

	if fields.Summary.Provided() {
		rec.Summary = fields.Summary.Value()
	}
	if fields.CustomPrompt.Provided() {
		rec.CustomPrompt = fields.CustomPrompt.Value()
	}
	if fields.Transcript.Provided() {
		rec.Transcript = fields.Transcript.Value()
	}
	if fields.MeetingTitle.Provided() {
		rec.MeetingTitle = fields.MeetingTitle.Value()
	}

	rec.UpdatedAt = time.Now().UTC()

	s.records[id] = rec

	return &rec, nil
}

func (s *memoryStore) CheckId(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", store.ErrInvalidId, id)
	}
	return nil
}

func (s *memoryStore) Close(ctx context.Context) error {
	return nil
}

func NewStore(opts ...store.Option) *memoryStore {
	options := store.NewOptions(opts...)

	s := &memoryStore{
		options: options,
		records: map[string]store.Record{},
		mtx:     sync.RWMutex{},
	}

	return s
}
