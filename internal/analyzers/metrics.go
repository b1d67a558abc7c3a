package analyzers

import (
	"api-log-analytics/internal/shared/metrics"
)

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
)

// metricAnalysisRunsTotal counts analysis runs by outcome.
// error_code is empty for successful runs and carries the ServiceError code otherwise
// (e.g. ANL_1002 for a rejected override).
//
// metricAnalysisRecordsTotal counts raw records by validation result ("valid" or "invalid").
// A batch of 10 records with one malformed entry adds 9 to result="valid" and 1 to result="invalid".
//
// metricAnalysisDurationSeconds observes the wall time of validation, aggregation and report
// building for one batch.
var (
	metricAnalysisRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "runs_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricAnalysisRecordsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "records_total",
		},
		[]string{metrics.FieldResult},
	)

	metricAnalysisDurationSeconds = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
	)
)
