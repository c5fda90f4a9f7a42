package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nomogram-service/internal/core/domain"
	"nomogram-service/internal/core/ports/output"
)

// MockHistoryRepo is a mock of HistoryRepository.
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Append(ctx context.Context, record *domain.HistoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepo) Get(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryRecord), args.Error(1)
}

func (m *MockHistoryRepo) List(ctx context.Context, filter ports.HistoryFilter) ([]*domain.HistoryRecord, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.HistoryRecord), args.Int(1), args.Error(2)
}

func (m *MockHistoryRepo) All(ctx context.Context) ([]*domain.HistoryRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HistoryRecord), args.Error(1)
}

func (m *MockHistoryRepo) Clear(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCoefficientSource is a mock of CoefficientSource.
type MockCoefficientSource struct {
	mock.Mock
}

func (m *MockCoefficientSource) Load(ctx context.Context) (*domain.CoefficientSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoefficientSet), args.Error(1)
}

func (m *MockCoefficientSource) Describe() string {
	return "mock"
}

// MockMetricsRecorder is a mock of MetricsRecorder.
type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) ObserveCalculation(category domain.RiskCategory, linearPredictor float64) {
	m.Called(category, linearPredictor)
}

func (m *MockMetricsRecorder) ObserveRejection(kind string) {
	m.Called(kind)
}

func (m *MockMetricsRecorder) ObserveHistoryFailure() {
	m.Called()
}
