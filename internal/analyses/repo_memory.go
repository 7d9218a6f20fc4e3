package analyses

import (
	"context"
	"sync"
)

// MemoryRepo keeps analyses in process memory.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Analysis
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Analysis)}
}

func (r *MemoryRepo) Create(ctx context.Context, a Analysis) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Analysis, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

// List returns analyses newest first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	out := make([]Analysis, 0, limit)
	for i := len(r.order) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.byID[r.order[i]])
	}
	return out, nil
}
