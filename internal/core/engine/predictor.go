package engine

import "nomogram-service/internal/core/domain"

// Linear predictor terms, in accumulation order.
const (
	TermAge       = "age"
	TermBilirubin = "bilirubin"
	TermSex       = "sex"
	TermCopper    = "copper"
	TermStage     = "stage"
	TermTreatment = "treatment"
)

// LinearPredictor is the weighted sum of the covariate terms. Bilirubin
// enters as a step function over its category; female sex, low bilirubin
// contribute nothing. Stage and treatment are treated as continuous.
func LinearPredictor(cov domain.PatientCovariates, coef domain.ModelCoefficients) float64 {
	var lp float64
	for _, c := range Contributions(cov, coef) {
		lp += c.Value
	}
	return lp
}

// Contributions returns each term of the linear predictor. Summing the values
// in order reproduces LinearPredictor exactly.
func Contributions(cov domain.PatientCovariates, coef domain.ModelCoefficients) []domain.Contribution {
	var sex float64
	if cov.Sex == domain.SexMale {
		sex = coef.SexMale
	}

	return []domain.Contribution{
		{Term: TermAge, Value: coef.Age * cov.Age},
		{Term: TermBilirubin, Value: domain.CategorizeBilirubin(cov.Bilirubin).Coefficient(coef)},
		{Term: TermSex, Value: sex},
		{Term: TermCopper, Value: coef.Copper * cov.Copper},
		{Term: TermStage, Value: coef.Stage * float64(cov.Stage)},
		{Term: TermTreatment, Value: coef.Treatment * float64(cov.Treatment)},
	}
}
