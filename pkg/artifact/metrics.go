package artifact

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricArtifactsCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stepshot",
		Name:      "artifacts_captured_total",
		Help:      "Number of screenshots written to the public directory.",
	})
	metricArtifactsDisposed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stepshot",
		Name:      "artifacts_disposed_total",
		Help:      "Screenshots handled by delayed disposal, by result (removed, missing, error).",
	}, []string{"result"})
)

func recordCapture() {
	metricArtifactsCaptured.Inc()
}

func recordDisposal(result string) {
	metricArtifactsDisposed.WithLabelValues(result).Inc()
}
