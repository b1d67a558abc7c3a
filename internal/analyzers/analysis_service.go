package analyzers

import (
	"context"
	"time"

	"api-log-analytics/internal/ingestors"
	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/configs"
	"api-log-analytics/internal/shared/loggers"
	"api-log-analytics/internal/shared/metrics"
	"api-log-analytics/internal/shared/svcerrors"
)

// AnalysisService turns a batch of raw records into a report.
//
//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// Analyze runs the analysis with the service's base configuration, shallowly overridden by
	// override. Invalid records are dropped and counted; they never fail the call.
	Analyze(ctx context.Context, records []models.RawRecord, override configs.AnalysisOverride) (*models.Report, *svcerrors.ServiceError)
}

type analysisService struct {
	baseConfig      configs.AnalysisConfig
	recordValidator ingestors.RecordValidator
	aggregator      Aggregator
	reportBuilder   ReportBuilder
}

func NewAnalysisService(baseConfig configs.AnalysisConfig, recordValidator ingestors.RecordValidator, aggregator Aggregator, reportBuilder ReportBuilder) AnalysisService {
	return &analysisService{
		baseConfig:      baseConfig,
		recordValidator: recordValidator,
		aggregator:      aggregator,
		reportBuilder:   reportBuilder,
	}
}

// NewDefaultAnalysisService wires the built-in validator, aggregator and report builder.
func NewDefaultAnalysisService(baseConfig configs.AnalysisConfig) AnalysisService {
	return NewAnalysisService(baseConfig, ingestors.NewRecordValidator(), NewAggregator(NewCostEstimator()), NewReportBuilder())
}

func (s *analysisService) Analyze(ctx context.Context, records []models.RawRecord, override configs.AnalysisOverride) (*models.Report, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)
	start := time.Now()

	if err := configs.ValidateAnalysisOverride(override); err != nil {
		svcErr := errInvalidOverride(err)
		metricAnalysisRunsTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}
	cfg := s.baseConfig.Merge(override)

	entries := make([]*models.LogEntry, 0, len(records))
	var invalidCount int64
	for _, raw := range records {
		entry, ok := s.recordValidator.Validate(raw)
		if !ok {
			invalidCount++
			continue
		}
		entries = append(entries, entry)
	}
	metricAnalysisRecordsTotal.WithLabelValues(resultValid).Add(float64(len(entries)))
	metricAnalysisRecordsTotal.WithLabelValues(resultInvalid).Add(float64(invalidCount))

	acc := s.aggregator.Aggregate(entries, cfg)
	report := s.reportBuilder.Build(acc, invalidCount, cfg)

	logger.Debug().
		Int(loggers.FieldRecordCount, len(records)).
		Int(loggers.FieldValidCount, len(entries)).
		Int64(loggers.FieldInvalidCount, invalidCount).
		Int(loggers.FieldEndpointCount, len(report.EndpointStats)).
		Msg("analyzed log batch")

	metricAnalysisRunsTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricAnalysisDurationSeconds.Observe(time.Since(start).Seconds())
	return report, nil
}

// ParseOverride decodes a JSON configuration override supplied by a caller.
func ParseOverride(data []byte) (configs.AnalysisOverride, *svcerrors.ServiceError) {
	override, err := configs.ParseAnalysisOverride(data)
	if err != nil {
		return configs.AnalysisOverride{}, errInvalidOverride(err)
	}
	return override, nil
}
