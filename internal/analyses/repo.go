package analyses

import "context"

// Repo stores analysis records.
type Repo interface {
	Create(ctx context.Context, a Analysis) error
	GetByID(ctx context.Context, id string) (Analysis, error)
	List(ctx context.Context, limit, offset int) ([]Analysis, error)
}
