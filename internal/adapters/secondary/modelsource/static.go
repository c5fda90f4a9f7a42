package modelsource

import (
	"context"

	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

type staticSource struct {
	set domain.CoefficientSet
}

// NewStaticSource serves a fixed coefficient set, by default the reference fit.
func NewStaticSource(set domain.CoefficientSet) ports.CoefficientSource {
	return &staticSource{set: set}
}

func NewReferenceSource() ports.CoefficientSource {
	return NewStaticSource(domain.ReferenceCoefficientSet())
}

func (s *staticSource) Load(ctx context.Context) (*domain.CoefficientSet, error) {
	set := s.set
	return &set, nil
}

func (s *staticSource) Describe() string {
	return "builtin " + s.set.Name
}
