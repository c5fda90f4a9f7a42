package domain

import "fmt"

// DaysPerYear accounts for leap years when converting horizons to days.
const DaysPerYear = 365.25

// FiveYearLabel is the horizon that drives risk classification.
const FiveYearLabel = "5y"

// Horizon is a labelled follow-up time in days.
type Horizon struct {
	Label string  `json:"label"`
	Days  float64 `json:"days"`
}

func YearHorizon(years int) Horizon {
	return Horizon{
		Label: fmt.Sprintf("%dy", years),
		Days:  float64(years) * DaysPerYear,
	}
}

// ReferenceHorizons returns the 2, 5 and 8 year horizons.
func ReferenceHorizons() []Horizon {
	return []Horizon{YearHorizon(2), YearHorizon(5), YearHorizon(8)}
}

type SurvivalPoint struct {
	Label       string  `json:"label"`
	Days        float64 `json:"days"`
	Probability float64 `json:"probability"`
}

// SurvivalEstimate keeps the order of the requested horizons.
type SurvivalEstimate []SurvivalPoint

func (e SurvivalEstimate) At(label string) (float64, bool) {
	for _, p := range e {
		if p.Label == label {
			return p.Probability, true
		}
	}
	return 0, false
}

func (e SurvivalEstimate) Map() map[string]float64 {
	m := make(map[string]float64, len(e))
	for _, p := range e {
		m[p.Label] = p.Probability
	}
	return m
}

type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// Lower bounds of the low and medium bands, applied to 5-year survival.
const (
	LowRiskMinSurvival    = 0.8
	MediumRiskMinSurvival = 0.5
)

// Advice is the follow-up recommendation shown next to the category.
func (r RiskCategory) Advice() string {
	switch r {
	case RiskLow:
		return "low risk - favorable prognosis"
	case RiskMedium:
		return "medium risk - regular follow-up recommended"
	case RiskHigh:
		return "high risk - active treatment recommended"
	default:
		return ""
	}
}

// Contribution is one term of the linear predictor.
type Contribution struct {
	Term  string  `json:"term"`
	Value float64 `json:"value"`
}

// Result is the outcome of one nomogram calculation.
type Result struct {
	Covariates      PatientCovariates `json:"covariates"`
	LinearPredictor float64           `json:"linear_predictor"`
	RiskScore       float64           `json:"risk_score"`
	Survivals       SurvivalEstimate  `json:"survivals"`
	RiskCategory    RiskCategory      `json:"risk_category,omitempty"`
	Contributions   []Contribution    `json:"contributions"`
}
