package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is a stored calculation together with its input.
type HistoryRecord struct {
	ID              uuid.UUID         `json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	RequestID       string            `json:"request_id"`
	ModelName       string            `json:"model_name"`
	ModelVersion    string            `json:"model_version"`
	Covariates      PatientCovariates `json:"covariates"`
	LinearPredictor float64           `json:"linear_predictor"`
	RiskScore       float64           `json:"risk_score"`
	Survivals       SurvivalEstimate  `json:"survivals"`
	RiskCategory    RiskCategory      `json:"risk_category"`
}

func NewHistoryRecord(requestID string, model CoefficientSet, result *Result, now time.Time) *HistoryRecord {
	return &HistoryRecord{
		ID:              uuid.New(),
		CreatedAt:       now,
		RequestID:       requestID,
		ModelName:       model.Name,
		ModelVersion:    model.Version,
		Covariates:      result.Covariates,
		LinearPredictor: result.LinearPredictor,
		RiskScore:       result.RiskScore,
		Survivals:       result.Survivals,
		RiskCategory:    result.RiskCategory,
	}
}
