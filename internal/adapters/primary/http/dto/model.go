package dto

import "nomogram-service/internal/core/domain"

type BilirubinBreakpoints struct {
	LowUpper    float64 `json:"low_upper"`
	MediumUpper float64 `json:"medium_upper"`
}

type ModelResponse struct {
	Name         string                   `json:"name"`
	Version      string                   `json:"version"`
	Coefficients domain.ModelCoefficients `json:"coefficients"`
	Horizons     []domain.Horizon         `json:"horizons"`
	Bilirubin    BilirubinBreakpoints     `json:"bilirubin_breakpoints"`
}

func ToModelResponse(set domain.CoefficientSet, horizons []domain.Horizon) ModelResponse {
	return ModelResponse{
		Name:         set.Name,
		Version:      set.Version,
		Coefficients: set.Coefficients,
		Horizons:     horizons,
		Bilirubin: BilirubinBreakpoints{
			LowUpper:    domain.BilirubinLowUpper,
			MediumUpper: domain.BilirubinMediumUpper,
		},
	}
}
