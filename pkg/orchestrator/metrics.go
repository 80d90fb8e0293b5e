package orchestrator

import (
	"time"

	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stepshot",
		Name:      "runs_total",
		Help:      "Runs by how they ended (completed, aborted, navigation_failed, unavailable).",
	}, []string{"result"})
	metricStepOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stepshot",
		Name:      "step_outcomes_total",
		Help:      "Use case outcomes by action kind and result.",
	}, []string{"action", "result"})
	metricHardFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stepshot",
		Name:      "hard_failures_total",
		Help:      "Runs stopped early by an unexpected error.",
	})
	metricRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stepshot",
		Name:      "run_duration_seconds",
		Help:      "Wall time of a run from page open to page close.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	})
)

func recordRunResult(result string) {
	metricRuns.WithLabelValues(result).Inc()
}

func recordRunDuration(d time.Duration) {
	metricRunDuration.Observe(d.Seconds())
}

// recordOutcomes counts one outcome per attempted use case. The trailing
// synthetic outcome of an aborted run is counted as a hard failure instead.
func recordOutcomes(steps []core.UseCase, report *core.RunReport) {
	attempted := len(report.Outcomes)
	if report.Err != nil {
		metricHardFailures.Inc()
		attempted--
	}
	for i := 0; i < attempted && i < len(steps); i++ {
		result := "failed"
		if report.Outcomes[i].Succeeded {
			result = "passed"
		}
		metricStepOutcomes.WithLabelValues(steps[i].Kind().String(), result).Inc()
	}
}
