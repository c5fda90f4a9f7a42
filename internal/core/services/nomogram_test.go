package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
	"nomogram-service/internal/testutil"
)

func TestNomogramService_Calculate(t *testing.T) {
	historyRepo := new(testutil.MockHistoryRepo)
	metrics := new(testutil.MockMetricsRecorder)
	svc := NewNomogramService(domain.ReferenceCoefficientSet(), domain.ReferenceHorizons(), historyRepo, metrics)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	historyRepo.On("Append", mock.Anything, mock.AnythingOfType("*domain.HistoryRecord")).Return(nil)
	metrics.On("ObserveCalculation", domain.RiskHigh, mock.AnythingOfType("float64")).Return()

	calc, err := svc.Calculate(context.Background(), testutil.ReferencePatient(), "req-1")
	require.NoError(t, err)
	assert.InDelta(t, 2.850808, calc.Result.LinearPredictor, 1e-9)
	assert.NotEmpty(t, calc.RecordID)

	rec := historyRepo.Calls[0].Arguments.Get(1).(*domain.HistoryRecord)
	assert.Equal(t, "req-1", rec.RequestID)
	assert.Equal(t, domain.ReferenceModelName, rec.ModelName)
	assert.Equal(t, fixed, rec.CreatedAt)
	assert.Equal(t, calc.RecordID, rec.ID.String())
	assert.Equal(t, calc.Result.Survivals, rec.Survivals)

	historyRepo.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestNomogramService_Calculate_HistoryFailureIsNotFatal(t *testing.T) {
	historyRepo := new(testutil.MockHistoryRepo)
	metrics := new(testutil.MockMetricsRecorder)
	svc := NewNomogramService(domain.ReferenceCoefficientSet(), domain.ReferenceHorizons(), historyRepo, metrics)

	historyRepo.On("Append", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	metrics.On("ObserveCalculation", mock.Anything, mock.Anything).Return()
	metrics.On("ObserveHistoryFailure").Return()

	calc, err := svc.Calculate(context.Background(), testutil.ReferencePatient(), "req-2")
	require.NoError(t, err)
	assert.NotNil(t, calc.Result)
	assert.Empty(t, calc.RecordID)
	metrics.AssertCalled(t, "ObserveHistoryFailure")
}

func TestNomogramService_Calculate_Rejections(t *testing.T) {
	metrics := new(testutil.MockMetricsRecorder)
	svc := NewNomogramService(domain.ReferenceCoefficientSet(), domain.ReferenceHorizons(), nil, metrics)

	metrics.On("ObserveRejection", ports.RejectionMissing).Return().Once()
	metrics.On("ObserveRejection", ports.RejectionInvalid).Return().Once()

	missing := testutil.ReferencePatient()
	missing.Stage = nil
	_, err := svc.Calculate(context.Background(), missing, "")
	assert.ErrorIs(t, err, domain.ErrMissingCovariate)

	invalid := testutil.ReferencePatient()
	age := 130.0
	invalid.Age = &age
	_, err = svc.Calculate(context.Background(), invalid, "")
	assert.ErrorIs(t, err, domain.ErrInvalidCovariate)

	metrics.AssertExpectations(t)
}

func TestNomogramService_Calculate_WithoutCollaborators(t *testing.T) {
	svc := NewNomogramService(domain.ReferenceCoefficientSet(), domain.ReferenceHorizons(), nil, nil)

	calc, err := svc.Calculate(context.Background(), testutil.ReferencePatient(), "")
	require.NoError(t, err)
	assert.Empty(t, calc.RecordID)
	assert.Len(t, calc.Result.Survivals, 3)
}

func TestNomogramService_HorizonsAreCopied(t *testing.T) {
	horizons := domain.ReferenceHorizons()
	svc := NewNomogramService(domain.ReferenceCoefficientSet(), horizons, nil, nil)

	horizons[0].Days = 1
	got := svc.Horizons()
	got[1].Days = 1

	assert.Equal(t, domain.ReferenceHorizons(), svc.Horizons())
}

func TestLoadModel(t *testing.T) {
	src := new(testutil.MockCoefficientSource)
	set := domain.ReferenceCoefficientSet()
	src.On("Load", mock.Anything).Return(&set, nil)

	got, err := LoadModel(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestLoadModel_RejectsInvalid(t *testing.T) {
	src := new(testutil.MockCoefficientSource)
	set := domain.ReferenceCoefficientSet()
	set.Coefficients.Lambda = 0
	src.On("Load", mock.Anything).Return(&set, nil)

	_, err := LoadModel(context.Background(), src)
	assert.ErrorIs(t, err, domain.ErrInvalidCoefficients)
}

func TestLoadModel_SourceError(t *testing.T) {
	src := new(testutil.MockCoefficientSource)
	src.On("Load", mock.Anything).Return(nil, domain.ErrCoefficientSetNotFound)

	_, err := LoadModel(context.Background(), src)
	assert.ErrorIs(t, err, domain.ErrCoefficientSetNotFound)
}
