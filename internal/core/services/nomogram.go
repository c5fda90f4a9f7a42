package services

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"nomogram-service/internal/core/domain"
	"nomogram-service/internal/core/engine"
	ports "nomogram-service/internal/core/ports/output"
)

// NomogramService runs the survival engine against the active model fit.
type NomogramService struct {
	model    domain.CoefficientSet
	horizons []domain.Horizon
	history  ports.HistoryRepository
	metrics  ports.MetricsRecorder
	now      func() time.Time
}

// NewNomogramService creates a new nomogram service. history and metrics may
// be nil.
func NewNomogramService(
	model domain.CoefficientSet,
	horizons []domain.Horizon,
	history ports.HistoryRepository,
	metrics ports.MetricsRecorder,
) *NomogramService {
	return &NomogramService{
		model:    model,
		horizons: append([]domain.Horizon(nil), horizons...),
		history:  history,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Calculation is a result plus the history record it was stored under.
type Calculation struct {
	Result   *domain.Result
	RecordID string
}

// Calculate evaluates raw covariates. A history write failure is logged and
// does not fail the calculation.
func (s *NomogramService) Calculate(ctx context.Context, raw domain.RawCovariates, requestID string) (*Calculation, error) {
	result, err := engine.Calculate(raw, s.model.Coefficients, s.horizons)
	if err != nil {
		s.observeRejection(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObserveCalculation(result.RiskCategory, result.LinearPredictor)
	}

	calc := &Calculation{Result: result}
	if s.history == nil {
		return calc, nil
	}

	record := domain.NewHistoryRecord(requestID, s.model, result, s.now())
	if err := s.history.Append(ctx, record); err != nil {
		log.WithError(err).WithField("request_id", requestID).Warn("append history record failed")
		if s.metrics != nil {
			s.metrics.ObserveHistoryFailure()
		}
		return calc, nil
	}
	calc.RecordID = record.ID.String()
	return calc, nil
}

func (s *NomogramService) observeRejection(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, domain.ErrMissingCovariate):
		s.metrics.ObserveRejection(ports.RejectionMissing)
	case errors.Is(err, domain.ErrInvalidCovariate):
		s.metrics.ObserveRejection(ports.RejectionInvalid)
	}
}

// Model returns the active coefficient set.
func (s *NomogramService) Model() domain.CoefficientSet {
	return s.model
}

// Horizons returns a copy of the projected horizons.
func (s *NomogramService) Horizons() []domain.Horizon {
	return append([]domain.Horizon(nil), s.horizons...)
}
