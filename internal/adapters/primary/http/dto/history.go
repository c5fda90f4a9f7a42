package dto

import (
	"time"

	"github.com/google/uuid"

	"nomogram-service/internal/core/domain"
)

type HistoryRecordResponse struct {
	ID              uuid.UUID                `json:"id"`
	CreatedAt       string                   `json:"created_at"`
	RequestID       string                   `json:"request_id,omitempty"`
	Model           ModelRef                 `json:"model"`
	Covariates      domain.PatientCovariates `json:"covariates"`
	LinearPredictor float64                  `json:"linear_predictor"`
	RiskScore       float64                  `json:"risk_score"`
	Survivals       map[string]float64       `json:"survivals"`
	RiskCategory    string                   `json:"risk_category,omitempty"`
}

type ListHistoryResponse struct {
	Items      []HistoryRecordResponse `json:"items"`
	Total      int                     `json:"total"`
	PageSize   int                     `json:"page_size"`
	NextOffset int                     `json:"next_offset"`
}

func ToHistoryRecordResponse(rec *domain.HistoryRecord) HistoryRecordResponse {
	return HistoryRecordResponse{
		ID:              rec.ID,
		CreatedAt:       rec.CreatedAt.UTC().Format(time.RFC3339),
		RequestID:       rec.RequestID,
		Model:           ModelRef{Name: rec.ModelName, Version: rec.ModelVersion},
		Covariates:      rec.Covariates,
		LinearPredictor: rec.LinearPredictor,
		RiskScore:       rec.RiskScore,
		Survivals:       rec.Survivals.Map(),
		RiskCategory:    string(rec.RiskCategory),
	}
}
