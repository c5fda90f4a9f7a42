package ports

import "nomogram-service/internal/core/domain"

// Rejection kinds reported to MetricsRecorder.
const (
	RejectionMissing = "missing"
	RejectionInvalid = "invalid"
)

type MetricsRecorder interface {
	ObserveCalculation(category domain.RiskCategory, linearPredictor float64)
	ObserveRejection(kind string)
	ObserveHistoryFailure()
}
