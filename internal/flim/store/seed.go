package store

import (
	"flims/internal/flim/models"
)

// SeedFlims are the records every process starts with.
var SeedFlims = []models.Flim{
	{ID: 1, Title: "title 1", Description: "description 1"},
	{ID: 2, Title: "title 2", Description: "description 2"},
	{ID: 3, Title: "title 3", Description: "description 3"},
}

// NewSeeded returns a store holding SeedFlims.
func NewSeeded() *InMemory {
	s := New()
	for _, f := range SeedFlims {
		s.flims = append(s.flims, f.Clone())
	}
	return s
}
