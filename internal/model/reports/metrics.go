package reports

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modePlaceholder = "placeholder"
	modeCompletion  = "completion"
)

var histogramGenerationTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "finances",
		Subsystem: "reports",
		Name:      "histogram_generation_time_seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	},
	[]string{"mode", "status"},
)

func observeGeneration(mode string, elapsed time.Duration, failed bool) {
	status := "ok"
	if failed {
		status = "error"
	}
	histogramGenerationTime.
		WithLabelValues(mode, status).
		Observe(elapsed.Seconds())
}
