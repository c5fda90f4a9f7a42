// Package engine turns patient covariates into Cox model survival estimates.
//
// Every function is pure: no I/O, no shared mutable state. Coefficients are
// passed in explicitly so alternate model fits can be evaluated side by side.
package engine

import "nomogram-service/internal/core/domain"

// Calculate validates raw and projects survival at each horizon. The risk
// category is left empty when no 5-year horizon is requested.
func Calculate(raw domain.RawCovariates, coef domain.ModelCoefficients, horizons []domain.Horizon) (*domain.Result, error) {
	cov, err := Validate(raw)
	if err != nil {
		return nil, err
	}

	contributions := Contributions(cov, coef)
	var lp float64
	for _, c := range contributions {
		lp += c.Value
	}

	proj := Project(lp, horizons, coef.Lambda)

	var category domain.RiskCategory
	if fiveYear, ok := proj.Survivals.At(domain.FiveYearLabel); ok {
		category = Classify(fiveYear)
	}

	return &domain.Result{
		Covariates:      cov,
		LinearPredictor: lp,
		RiskScore:       proj.RiskScore,
		Survivals:       proj.Survivals,
		RiskCategory:    category,
		Contributions:   contributions,
	}, nil
}
