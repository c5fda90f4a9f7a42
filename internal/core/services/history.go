package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// HistoryService reads, clears and exports calculation history.
type HistoryService struct {
	repo     ports.HistoryRepository
	horizons []domain.Horizon
}

func NewHistoryService(repo ports.HistoryRepository, horizons []domain.Horizon) *HistoryService {
	return &HistoryService{
		repo:     repo,
		horizons: append([]domain.Horizon(nil), horizons...),
	}
}

// HistoryPage is one page of records with the limit and offset actually
// applied.
type HistoryPage struct {
	Records []*domain.HistoryRecord
	Total   int
	Limit   int
	Offset  int
}

// List returns records newest first. A non-positive limit falls back to the
// default and larger limits are capped.
func (s *HistoryService) List(ctx context.Context, filter ports.HistoryFilter) (*HistoryPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &HistoryPage{
		Records: records,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

func (s *HistoryService) Get(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	return s.repo.Get(ctx, id)
}

// Clear removes every record and reports how many were deleted.
func (s *HistoryService) Clear(ctx context.Context) (int64, error) {
	return s.repo.Clear(ctx)
}

// ExportAll writes every record, oldest first, as CSV. Records appended while
// the export runs are not included.
func (s *HistoryService) ExportAll(ctx context.Context, w io.Writer) (int, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(w, s.horizons, all); err != nil {
		return 0, err
	}
	return len(all), nil
}

// ExportRecord writes a single record as CSV.
func (s *HistoryService) ExportRecord(ctx context.Context, id uuid.UUID, w io.Writer) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	return WriteCSV(w, s.horizons, []*domain.HistoryRecord{rec})
}
