package store

import (
	"context"
	"sync"

	"flims/internal/flim/models"
	"flims/pkg/platform/sentinel"
)

// InMemory holds every flim for the lifetime of the process.
// Records are kept in insertion order and never removed.
// Reads return copies so callers cannot mutate stored records.
type InMemory struct {
	mu    sync.RWMutex
	flims []models.Flim
}

// New returns an empty store.
func New() *InMemory {
	return &InMemory{}
}

// List returns every record in insertion order.
func (s *InMemory) List(_ context.Context) ([]models.Flim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(), nil
}

// Append adds a record with id = current length + 1 and returns the full
// updated sequence. The id is computed under the write lock, so concurrent
// appends never share an id.
func (s *InMemory) Append(_ context.Context, title, description string) ([]models.Flim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flims = append(s.flims, models.Flim{
		ID:          len(s.flims) + 1,
		Title:       title,
		Description: description,
	})
	return s.snapshot(), nil
}

// FindByID returns the first record with the given id.
func (s *InMemory) FindByID(_ context.Context, id int) (models.Flim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.flims[i].Clone(), nil
	}
	return models.Flim{}, sentinel.ErrNotFound
}

// UpdateFields overwrites the named fields on the record with the given id
// and reports whether a record matched. A missing id is a silent no-op.
func (s *InMemory) UpdateFields(_ context.Context, id int, fields map[string]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	for name, value := range fields {
		s.flims[i].SetField(name, value)
	}
	return true, nil
}

// Len returns the number of stored records.
func (s *InMemory) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flims)
}

func (s *InMemory) indexOf(id int) int {
	for i := range s.flims {
		if s.flims[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *InMemory) snapshot() []models.Flim {
	out := make([]models.Flim, len(s.flims))
	for i, f := range s.flims {
		out[i] = f.Clone()
	}
	return out
}
