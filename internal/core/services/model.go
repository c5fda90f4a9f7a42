package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

// LoadModel reads a coefficient set from src and rejects unusable fits.
func LoadModel(ctx context.Context, src ports.CoefficientSource) (domain.CoefficientSet, error) {
	set, err := src.Load(ctx)
	if err != nil {
		return domain.CoefficientSet{}, fmt.Errorf("load coefficients from %s: %w", src.Describe(), err)
	}
	if err := set.Validate(); err != nil {
		return domain.CoefficientSet{}, fmt.Errorf("coefficients from %s: %w", src.Describe(), err)
	}

	log.WithFields(log.Fields{
		"source":  src.Describe(),
		"model":   set.Name,
		"version": set.Version,
		"lambda":  set.Coefficients.Lambda,
	}).Info("model coefficients loaded")

	return *set, nil
}
