package transcripts

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a transcript does not exist.
var ErrNotFound = errors.New("transcript not found")

// Repo stores transcripts for the lifetime of the process. Setting a new
// current transcript discards nothing except the "current" pointer; prior
// transcripts stay addressable by ID so earlier analyses remain viewable.
type Repo interface {
	Create(ctx context.Context, transcript Transcript) error
	GetByID(ctx context.Context, id string) (Transcript, error)
	Current(ctx context.Context) (Transcript, error)
}
