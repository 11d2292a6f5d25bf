package bp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricPrefix = "bp_"

var (
	readingsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: metricPrefix + "readings_stored_total",
		Help: "Readings persisted by the ingestion handler",
	})

	readingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + "readings_rejected_total",
		Help: "Submissions rejected by validation",
	}, []string{"reason"})

	reportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + "reports_generated_total",
		Help: "Reports written to the object store",
	}, []string{"kind"})

	reportFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + "report_failures_total",
		Help: "Report generations that returned an error",
	}, []string{"kind"})
)
