package ports

import (
	"context"

	"github.com/google/uuid"

	"nomogram-service/internal/core/domain"
)

type HistoryFilter struct {
	Limit  int
	Offset int
}

// HistoryRepository stores calculation records. List returns the newest
// records first together with the total count. All returns every record,
// oldest first, as of a single point in time.
type HistoryRepository interface {
	Append(ctx context.Context, record *domain.HistoryRecord) error
	Get(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error)
	List(ctx context.Context, filter HistoryFilter) ([]*domain.HistoryRecord, int, error)
	All(ctx context.Context) ([]*domain.HistoryRecord, error)
	Clear(ctx context.Context) (int64, error)
}
