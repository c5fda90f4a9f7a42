package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

const namespace = "nomogram"

type recorder struct {
	calculations    *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	linearPredictor prometheus.Histogram
	historyFailures prometheus.Counter
}

// NewRecorder registers the calculation metrics on reg.
func NewRecorder(reg prometheus.Registerer) ports.MetricsRecorder {
	r := &recorder{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Completed survival calculations by risk category.",
		}, []string{"risk_category"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Calculations rejected before projection, by reason.",
		}, []string{"reason"}),
		linearPredictor: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "linear_predictor",
			Help:      "Distribution of computed linear predictors.",
			Buckets:   prometheus.LinearBuckets(0, 1, 13),
		}),
		historyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_failures_total",
			Help:      "History records that could not be stored.",
		}),
	}
	reg.MustRegister(r.calculations, r.rejections, r.linearPredictor, r.historyFailures)
	return r
}

func (r *recorder) ObserveCalculation(category domain.RiskCategory, linearPredictor float64) {
	label := string(category)
	if label == "" {
		label = "unclassified"
	}
	r.calculations.WithLabelValues(label).Inc()
	r.linearPredictor.Observe(linearPredictor)
}

func (r *recorder) ObserveRejection(kind string) {
	r.rejections.WithLabelValues(kind).Inc()
}

func (r *recorder) ObserveHistoryFailure() {
	r.historyFailures.Inc()
}
