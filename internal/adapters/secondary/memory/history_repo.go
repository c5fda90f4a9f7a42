package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

// historyRepo keeps records in process memory, oldest first. When maxRecords
// is positive the oldest records are evicted beyond that size.
type historyRepo struct {
	mu         sync.RWMutex
	records    []*domain.HistoryRecord
	maxRecords int
}

func NewHistoryRepository(maxRecords int) ports.HistoryRepository {
	return &historyRepo{maxRecords: maxRecords}
}

func (r *historyRepo) Append(ctx context.Context, record *domain.HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, record)
	if r.maxRecords > 0 && len(r.records) > r.maxRecords {
		drop := len(r.records) - r.maxRecords
		r.records = append([]*domain.HistoryRecord(nil), r.records[drop:]...)
	}
	return nil
}

func (r *historyRepo) Get(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *historyRepo) List(ctx context.Context, filter ports.HistoryFilter) ([]*domain.HistoryRecord, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.records)
	if filter.Limit <= 0 {
		filter.Limit = total
	}
	items := make([]*domain.HistoryRecord, 0, filter.Limit)
	for i := total - 1 - filter.Offset; i >= 0 && len(items) < filter.Limit; i-- {
		items = append(items, r.records[i])
	}
	return items, total, nil
}

func (r *historyRepo) All(ctx context.Context) ([]*domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*domain.HistoryRecord(nil), r.records...), nil
}

func (r *historyRepo) Clear(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.records))
	r.records = nil
	return n, nil
}
