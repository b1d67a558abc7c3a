package analyzers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"api-log-analytics/internal/analyzers"
	analyzermocks "api-log-analytics/internal/analyzers/mocks"
	"api-log-analytics/internal/ingestors"
	ingestormocks "api-log-analytics/internal/ingestors/mocks"
	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/configs"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func rawLog(endpoint, method string, responseTime any, status any, userID string) map[string]any {
	return map[string]any{
		"timestamp":           "2025-01-15T10:00:00.000Z",
		"endpoint":            endpoint,
		"method":              method,
		"response_time_ms":    responseTime,
		"status_code":         status,
		"user_id":             userID,
		"request_size_bytes":  256.0,
		"response_size_bytes": 1024.0,
	}
}

func analyze(t *testing.T, records []models.RawRecord, override configs.AnalysisOverride) *models.Report {
	t.Helper()
	service := analyzers.NewDefaultAnalysisService(configs.DefaultAnalysisConfig())
	report, err := service.Analyze(context.Background(), records, override)
	require.Nil(t, err)
	require.NotNil(t, report)
	return report
}

func TestAnalysisService_Analyze_EmptyInput(t *testing.T) {
	t.Parallel()

	report := analyze(t, []models.RawRecord{}, configs.AnalysisOverride{})

	assert.Equal(t, int64(0), report.Summary.TotalRequests)
	assert.Nil(t, report.Summary.TimeRange)
	assert.Equal(t, []string{"All 0 logs were invalid"}, report.Recommendations)
}

func TestAnalysisService_Analyze_OutOfRangeNumbersInvalidateOnlyTheirRecord(t *testing.T) {
	t.Parallel()

	records, err := ingestors.DecodeBatchBytes([]byte(`[
		{"timestamp": "2025-01-15T10:00:00Z", "endpoint": "/api/users", "response_time_ms": 100, "status_code": 200},
		{"timestamp": "2025-01-15T10:05:00Z", "endpoint": "/api/users", "response_time_ms": 1e400, "status_code": 200},
		{"timestamp": 1e300, "endpoint": "/api/users", "response_time_ms": 100, "status_code": 200}
	]`))
	require.NoError(t, err)

	report := analyze(t, records, configs.AnalysisOverride{})

	assert.Equal(t, int64(1), report.Summary.TotalRequests)
	assert.Equal(t, int64(2), report.Summary.InvalidLogCount)
	require.NotNil(t, report.Summary.TimeRange)
	assert.Equal(t, models.TimeRange{Start: "2025-01-15T10:00:00.000Z", End: "2025-01-15T10:00:00.000Z"}, *report.Summary.TimeRange)
}

func TestAnalysisService_Analyze_NegativeResponseTimeDropped(t *testing.T) {
	t.Parallel()

	report := analyze(t, []models.RawRecord{rawLog("/api/users", "GET", -100.0, 200.0, "u1")}, configs.AnalysisOverride{})

	assert.Equal(t, int64(1), report.Summary.InvalidLogCount)
	assert.Equal(t, int64(0), report.Summary.TotalRequests)
	assert.Equal(t, []string{"All 1 logs were invalid"}, report.Recommendations)
}

func TestAnalysisService_Analyze_MemoryTierBoundary(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		size float64
		want float64
	}{
		{size: 1024, want: 0.00001},
		{size: 1025, want: 0.00005},
	} {
		t.Run(fmt.Sprint(tt.size), func(t *testing.T) {
			record := rawLog("/api/users", "GET", 0.0, 200.0, "u1")
			record["response_size_bytes"] = tt.size

			report := analyze(t, []models.RawRecord{record}, configs.AnalysisOverride{})

			assert.Equal(t, tt.want, report.CostAnalysis.CostBreakdown.MemoryCosts)
		})
	}
}

func TestAnalysisService_Analyze_CachingOpportunityWithOverride(t *testing.T) {
	t.Parallel()

	records := make([]models.RawRecord, 0, 10)
	for i := 0; i < 9; i++ {
		records = append(records, rawLog("/api/products", "GET", 120.0, 200.0, "u1"))
	}
	records = append(records, rawLog("/api/products", "POST", 120.0, 201.0, "u2"))

	override, svcErr := analyzers.ParseOverride([]byte(`{"CACHING_CRITERIA": {
		"MIN_REQUESTS": 10, "MIN_GET_RATIO": 0.9, "MAX_ERROR_RATE": 0.1, "DEFAULT_TTL_MINUTES": 60
	}}`))
	require.Nil(t, svcErr)

	report := analyze(t, records, override)

	require.Len(t, report.CachingOpportunities, 1)
	assert.Equal(t, int64(90), report.CachingOpportunities[0].PotentialCacheHitRate)
	assert.Equal(t, 60, report.CachingOpportunities[0].RecommendedTTLMinutes)
}

func TestAnalysisService_Analyze_PartialCachingOverrideQualifiesNothing(t *testing.T) {
	t.Parallel()

	records := make([]models.RawRecord, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, rawLog("/api/products", "GET", 120.0, 200.0, "u1"))
	}

	override, svcErr := analyzers.ParseOverride([]byte(`{"CACHING_CRITERIA": {"MIN_REQUESTS": 1}}`))
	require.Nil(t, svcErr)

	report := analyze(t, records, override)

	assert.Empty(t, report.CachingOpportunities)
	assert.Equal(t, models.PotentialSavings{}, report.TotalPotentialSavings)
}

func TestAnalysisService_Analyze_MostCommonStatusTie(t *testing.T) {
	t.Parallel()

	var records []models.RawRecord
	for i := 0; i < 3; i++ {
		records = append(records, rawLog("/api/orders", "GET", 10.0, 200.0, "u"))
	}
	for i := 0; i < 3; i++ {
		records = append(records, rawLog("/api/orders", "GET", 10.0, 500.0, "u"))
	}

	report := analyze(t, records, configs.AnalysisOverride{})

	require.Len(t, report.EndpointStats, 1)
	assert.Equal(t, 500.0, report.EndpointStats[0].MostCommonStatus)
}

func TestAnalysisService_Analyze_ShallowThresholdOverride(t *testing.T) {
	t.Parallel()

	override, svcErr := analyzers.ParseOverride([]byte(`{"RESPONSE_TIME_THRESHOLDS": {"MEDIUM": 50}}`))
	require.Nil(t, svcErr)

	report := analyze(t, []models.RawRecord{rawLog("/api/slow", "GET", 5000.0, 200.0, "u")}, override)

	require.Len(t, report.PerformanceIssues, 1)
	assert.Equal(t, models.SeverityMedium, report.PerformanceIssues[0].Severity, "HIGH and CRITICAL were dropped by the override")
}

func TestAnalysisService_Analyze_InvalidOverride(t *testing.T) {
	t.Parallel()

	negative := -1
	service := analyzers.NewDefaultAnalysisService(configs.DefaultAnalysisConfig())

	report, svcErr := service.Analyze(context.Background(), nil, configs.AnalysisOverride{TopUsersCount: &negative})

	assert.Nil(t, report)
	require.NotNil(t, svcErr)
	assert.Equal(t, "ANL_1002", svcErr.Code)
	assert.True(t, svcErr.IsInvalidArgument())
}

func TestParseOverride_Malformed(t *testing.T) {
	t.Parallel()

	_, svcErr := analyzers.ParseOverride([]byte(`{"CACHING_CRITERIA": [`))
	require.NotNil(t, svcErr)
	assert.Equal(t, "ANL_1002", svcErr.Code)
}

func TestAnalysisService_Analyze_WiresComponents(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	validator := ingestormocks.NewMockRecordValidator(ctrl)
	aggregator := analyzermocks.NewMockAggregator(ctrl)
	builder := analyzermocks.NewMockReportBuilder(ctrl)

	base := configs.DefaultAnalysisConfig()
	topUsers := 1
	override := configs.AnalysisOverride{TopUsersCount: &topUsers}
	merged := base.Merge(override)

	good := &models.LogEntry{Endpoint: "/a"}
	validator.EXPECT().Validate("bad").Return(nil, false)
	validator.EXPECT().Validate("good").Return(good, true)

	acc := &analyzers.Accumulators{ValidCount: 1}
	aggregator.EXPECT().Aggregate([]*models.LogEntry{good}, merged).Return(acc)

	want := &models.Report{Summary: models.Summary{TotalRequests: 1, InvalidLogCount: 1}}
	builder.EXPECT().Build(acc, int64(1), merged).Return(want)

	service := analyzers.NewAnalysisService(base, validator, aggregator, builder)
	got, svcErr := service.Analyze(context.Background(), []models.RawRecord{"bad", "good"}, override)

	require.Nil(t, svcErr)
	assert.Same(t, want, got)
}

func genRawRecord() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("/api/users", "/api/orders", "/api/search", ""),
		gen.OneConstOf("GET", "POST", "PUT", ""),
		gen.OneGenOf(gen.Float64Range(-50, 3000).Map(func(v float64) any { return v }), gen.Const(any("abc"))),
		gen.OneConstOf(200.0, 201.0, 404.0, 500.0, "oops"),
		gen.OneConstOf("u1", "u2", "u3", "u4", "u5", "u6", "u7", ""),
		gen.IntRange(0, 47),
		gen.Bool(),
	).Map(func(vals []interface{}) models.RawRecord {
		if !vals[6].(bool) {
			return "not an object"
		}
		return map[string]any{
			"timestamp":           fmt.Sprintf("2025-01-%02dT%02d:15:00Z", 15+vals[5].(int)/24, vals[5].(int)%24),
			"endpoint":            vals[0],
			"method":              vals[1],
			"response_time_ms":    vals[2],
			"status_code":         vals[3],
			"user_id":             vals[4],
			"response_size_bytes": 2048.0,
		}
	})
}

func TestProperty_AnalysisReport(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.MaxSize = 60

	properties := gopter.NewProperties(parameters)
	cfg := configs.DefaultAnalysisConfig()
	service := analyzers.NewDefaultAnalysisService(cfg)
	ctx := context.Background()

	properties.Property("valid plus invalid equals the batch size", prop.ForAll(
		func(records []models.RawRecord) bool {
			report, err := service.Analyze(ctx, records, configs.AnalysisOverride{})
			return err == nil && report.Summary.TotalRequests+report.Summary.InvalidLogCount == int64(len(records))
		},
		gen.SliceOf(genRawRecord()),
	))

	properties.Property("top users are bounded and sorted descending", prop.ForAll(
		func(records []models.RawRecord) bool {
			report, err := service.Analyze(ctx, records, configs.AnalysisOverride{})
			if err != nil || len(report.TopUsersByRequests) > cfg.TopUsersCount {
				return false
			}
			for i := 1; i < len(report.TopUsersByRequests); i++ {
				if report.TopUsersByRequests[i-1].RequestCount < report.TopUsersByRequests[i].RequestCount {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genRawRecord()),
	))

	properties.Property("recommendations never exceed five", prop.ForAll(
		func(records []models.RawRecord) bool {
			report, err := service.Analyze(ctx, records, configs.AnalysisOverride{})
			return err == nil && len(report.Recommendations) <= 5
		},
		gen.SliceOf(genRawRecord()),
	))

	properties.Property("analysis is idempotent down to the encoded bytes", prop.ForAll(
		func(records []models.RawRecord) bool {
			first, err := service.Analyze(ctx, records, configs.AnalysisOverride{})
			if err != nil {
				return false
			}
			second, err := service.Analyze(ctx, records, configs.AnalysisOverride{})
			if err != nil {
				return false
			}
			a, errA := json.Marshal(first)
			b, errB := json.Marshal(second)
			return errA == nil && errB == nil && string(a) == string(b)
		},
		gen.SliceOf(genRawRecord()),
	))

	properties.TestingRun(t)
}
