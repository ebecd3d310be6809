// Package store keeps annotation reports so clients can fetch them again by
// id.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/jsphweid/clarinetlint/model"
)

var ErrNotFound = errors.New("report not found")

type Store interface {
	Put(ctx context.Context, r model.AnnotateResponse) error
	Get(ctx context.Context, id string) (model.AnnotateResponse, error)
}

type Memory struct {
	mu      sync.RWMutex
	reports map[string]model.AnnotateResponse
}

func NewMemory() *Memory {
	return &Memory{reports: make(map[string]model.AnnotateResponse)}
}

func (m *Memory) Put(_ context.Context, r model.AnnotateResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ID] = r
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (model.AnnotateResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[id]
	if !ok {
		return model.AnnotateResponse{}, ErrNotFound
	}
	return r, nil
}
