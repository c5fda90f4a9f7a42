package ports

import (
	"context"

	"nomogram-service/internal/core/domain"
)

// CoefficientSource loads a fitted model. Sources are read once at startup.
type CoefficientSource interface {
	Load(ctx context.Context) (*domain.CoefficientSet, error)
	Describe() string
}
