package engine

import (
	"math"

	"nomogram-service/internal/core/domain"
)

// Projection is the horizon-wise survival for one linear predictor.
type Projection struct {
	RiskScore float64
	Survivals domain.SurvivalEstimate
}

// Project applies S(t|x) = S0(t)^exp(lp) at every horizon, in the order given.
// A result that underflows is held at the smallest positive float so every
// probability stays in (0, 1].
func Project(lp float64, horizons []domain.Horizon, lambda float64) Projection {
	risk := math.Exp(lp)

	survivals := make(domain.SurvivalEstimate, 0, len(horizons))
	for _, h := range horizons {
		s := math.Pow(BaselineSurvival(h.Days, lambda), risk)
		if s <= 0 {
			s = math.SmallestNonzeroFloat64
		}
		survivals = append(survivals, domain.SurvivalPoint{
			Label:       h.Label,
			Days:        h.Days,
			Probability: s,
		})
	}

	return Projection{RiskScore: risk, Survivals: survivals}
}

// Classify maps 5-year survival onto a risk band. Band lower bounds are
// inclusive.
func Classify(fiveYear float64) domain.RiskCategory {
	switch {
	case fiveYear >= domain.LowRiskMinSurvival:
		return domain.RiskLow
	case fiveYear >= domain.MediumRiskMinSurvival:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}
