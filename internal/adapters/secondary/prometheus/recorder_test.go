package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg).(*recorder)

	rec.ObserveCalculation(domain.RiskHigh, 2.85)
	rec.ObserveCalculation(domain.RiskHigh, 3.1)
	rec.ObserveCalculation("", 0.2)
	rec.ObserveRejection(ports.RejectionInvalid)
	rec.ObserveHistoryFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.calculations.WithLabelValues("high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.calculations.WithLabelValues("unclassified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.rejections.WithLabelValues(ports.RejectionInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.historyFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.linearPredictor))
}

func TestNewRecorder_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)
	assert.Panics(t, func() { NewRecorder(reg) })
}
