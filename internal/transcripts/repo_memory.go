package transcripts

import (
	"context"
	"sync"
)

// MemoryRepo stores transcripts in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu        sync.RWMutex
	byID      map[string]Transcript
	currentID string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Transcript)}
}

// Create stores the transcript and makes it the current one.
func (r *MemoryRepo) Create(ctx context.Context, transcript Transcript) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[transcript.ID] = transcript
	r.currentID = transcript.ID
	return nil
}

// GetByID returns a transcript by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Transcript, error) {
	if err := ctx.Err(); err != nil {
		return Transcript{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	transcript, ok := r.byID[id]
	if !ok {
		return Transcript{}, ErrNotFound
	}
	return transcript, nil
}

// Current returns the most recently created transcript.
func (r *MemoryRepo) Current(ctx context.Context) (Transcript, error) {
	if err := ctx.Err(); err != nil {
		return Transcript{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.currentID == "" {
		return Transcript{}, ErrNotFound
	}
	return r.byID[r.currentID], nil
}

var _ Repo = (*MemoryRepo)(nil)
