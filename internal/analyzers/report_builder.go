package analyzers

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/configs"
	"api-log-analytics/internal/shared/mathx"
)

const (
	// timestampLayout matches ISO-8601 with millisecond precision in UTC.
	timestampLayout = "2006-01-02T15:04:05.000Z"

	// cacheEffectiveness is the assumed share of requests a cache would absorb.
	cacheEffectiveness = 0.8
	cacheConfidence    = "high"

	maxRecommendations       = 5
	maxIssueRecommendations  = 3
	averagePrecision         = 1
	costPrecision            = 4
	costPerRequestPrecision  = 6
	percentPerRatio          = 100
	maxArrayIndexStatusValue = math.MaxUint32 - 1
)

// ReportBuilder derives the final report from the accumulators of one pass.
//
//go:generate mockgen -source=report_builder.go -destination=./mocks/report_builder_mock.go -package=mocks
type ReportBuilder interface {
	Build(acc *Accumulators, invalidCount int64, cfg configs.AnalysisConfig) *models.Report
}

type reportBuilder struct{}

func NewReportBuilder() ReportBuilder {
	return &reportBuilder{}
}

// Build assembles the report. With no valid entries it returns the empty report.
func (b *reportBuilder) Build(acc *Accumulators, invalidCount int64, cfg configs.AnalysisConfig) *models.Report {
	if acc == nil || acc.ValidCount == 0 {
		return emptyReport(invalidCount)
	}

	issues := buildPerformanceIssues(acc, cfg)
	costAnalysis := buildCostAnalysis(acc)
	opportunities, savings := buildCachingAnalysis(acc, cfg)
	costAnalysis.OptimizationPotentialUSD = savings.CostSavingsUSD

	summary := buildSummary(acc)
	summary.InvalidLogCount = invalidCount

	return &models.Report{
		Summary:               summary,
		EndpointStats:         buildEndpointStats(acc),
		PerformanceIssues:     issues,
		Recommendations:       buildRecommendations(issues, opportunities),
		HourlyDistribution:    copyHourly(acc.HourlyDistribution),
		TopUsersByRequests:    buildTopUsers(acc, cfg.TopUsersCount),
		CostAnalysis:          costAnalysis,
		CachingOpportunities:  opportunities,
		TotalPotentialSavings: savings,
	}
}

func emptyReport(invalidCount int64) *models.Report {
	return &models.Report{
		Summary: models.Summary{
			TotalRequests:   0,
			InvalidLogCount: invalidCount,
			TimeRange:       nil,
		},
		EndpointStats:      []models.EndpointStat{},
		PerformanceIssues:  []models.PerformanceIssue{},
		Recommendations:    []string{fmt.Sprintf("All %d logs were invalid", invalidCount)},
		HourlyDistribution: map[string]int64{},
		TopUsersByRequests: []models.UserRequestCount{},
		CostAnalysis: models.CostAnalysis{
			CostByEndpoint: []models.EndpointCost{},
		},
		CachingOpportunities: []models.CachingOpportunity{},
	}
}

func buildSummary(acc *Accumulators) models.Summary {
	valid := float64(acc.ValidCount)
	return models.Summary{
		TotalRequests: acc.ValidCount,
		TimeRange: &models.TimeRange{
			Start: formatTimestamp(acc.MinTimestamp),
			End:   formatTimestamp(acc.MaxTimestamp),
		},
		AvgResponseTimeMs:   mathx.Round(acc.TotalResponseTime/valid, averagePrecision),
		ErrorRatePercentage: mathx.Round(float64(acc.TotalErrorCount)/valid*percentPerRatio, averagePrecision),
	}
}

func buildEndpointStats(acc *Accumulators) []models.EndpointStat {
	stats := make([]models.EndpointStat, 0, len(acc.Endpoints()))
	for _, ep := range acc.Endpoints() {
		stats = append(stats, models.EndpointStat{
			Endpoint:          ep.Endpoint,
			RequestCount:      ep.RequestCount,
			AvgResponseTimeMs: mathx.Round(ep.AvgResponseTime(), averagePrecision),
			SlowestRequestMs:  ep.MaxResponseTime,
			FastestRequestMs:  ep.MinResponseTime,
			ErrorCount:        ep.ErrorCount,
			MostCommonStatus:  mostCommonStatus(ep.statuses),
		})
	}
	return stats
}

// mostCommonStatus folds the status keys left to right keeping the key with the higher count;
// on a tie the later key wins. Keys that are non-negative integer codes are visited first in
// ascending order, then the remaining keys in first-seen order, so the outcome does not depend
// on the order in which the codes arrived.
func mostCommonStatus(statuses *orderedCounts) float64 {
	keys := statusVisitOrder(statuses.Keys())
	if len(keys) == 0 {
		return 0
	}
	best := keys[0]
	for _, key := range keys[1:] {
		if !(statuses.Get(best) > statuses.Get(key)) {
			best = key
		}
	}
	status, _ := strconv.ParseFloat(best, 64)
	return status
}

func statusVisitOrder(keys []string) []string {
	integers := make([]string, 0, len(keys))
	others := make([]string, 0, len(keys))
	for _, key := range keys {
		if isIndexKey(key) {
			integers = append(integers, key)
		} else {
			others = append(others, key)
		}
	}
	sort.SliceStable(integers, func(i, j int) bool {
		a, _ := strconv.ParseUint(integers[i], 10, 64)
		b, _ := strconv.ParseUint(integers[j], 10, 64)
		return a < b
	})
	return append(integers, others...)
}

func isIndexKey(key string) bool {
	n, err := strconv.ParseUint(key, 10, 64)
	return err == nil && n <= maxArrayIndexStatusValue && strconv.FormatUint(n, 10) == key
}

// buildPerformanceIssues emits up to two issues per endpoint, slow_endpoint first.
func buildPerformanceIssues(acc *Accumulators, cfg configs.AnalysisConfig) []models.PerformanceIssue {
	issues := make([]models.PerformanceIssue, 0)
	for _, ep := range acc.Endpoints() {
		avg := ep.AvgResponseTime()
		if severity := ClassifyResponseTime(avg, cfg); severity.IsIssue() {
			issues = append(issues, models.PerformanceIssue{
				Type:              models.IssueSlowEndpoint,
				Endpoint:          ep.Endpoint,
				AvgResponseTimeMs: float64Ptr(mathx.Round(avg, averagePrecision)),
				ThresholdMs:       thresholdPtr(cfg.ResponseTimeThresholds.Medium),
				Severity:          severity,
			})
		}

		errorRate := ep.ErrorRatio() * percentPerRatio
		if severity := ClassifyErrorRate(errorRate, cfg); severity.IsIssue() {
			issues = append(issues, models.PerformanceIssue{
				Type:                models.IssueHighErrorRate,
				Endpoint:            ep.Endpoint,
				ErrorRatePercentage: float64Ptr(mathx.Round(errorRate, averagePrecision)),
				Severity:            severity,
			})
		}
	}
	return issues
}

// buildTopUsers sorts users by request count, descending, keeping first-sighting order on ties.
func buildTopUsers(acc *Accumulators, topCount int) []models.UserRequestCount {
	userIDs := acc.UserIDs()
	users := make([]models.UserRequestCount, 0, len(userIDs))
	for _, userID := range userIDs {
		users = append(users, models.UserRequestCount{UserID: userID, RequestCount: acc.UserRequestCount(userID)})
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].RequestCount > users[j].RequestCount
	})
	if topCount < 0 {
		topCount = 0
	}
	if len(users) > topCount {
		users = users[:topCount]
	}
	return users
}

// buildCostAnalysis leaves OptimizationPotentialUSD to the caching analysis.
func buildCostAnalysis(acc *Accumulators) models.CostAnalysis {
	byEndpoint := make([]models.EndpointCost, 0, len(acc.Endpoints()))
	for _, ep := range acc.Endpoints() {
		byEndpoint = append(byEndpoint, models.EndpointCost{
			Endpoint:       ep.Endpoint,
			TotalCost:      mathx.Round(ep.CostTotal, costPrecision),
			CostPerRequest: mathx.Round(ep.CostTotal/float64(ep.CostCount), costPerRequestPrecision),
		})
	}

	return models.CostAnalysis{
		TotalCostUSD: mathx.Round(acc.TotalCosts.TotalCost, costPrecision),
		CostBreakdown: models.CostBreakdown{
			RequestCosts:   mathx.Round(acc.TotalCosts.RequestCost, costPrecision),
			ExecutionCosts: mathx.Round(acc.TotalCosts.ExecutionCost, costPrecision),
			MemoryCosts:    mathx.Round(acc.TotalCosts.MemoryCost, costPrecision),
		},
		CostByEndpoint: byEndpoint,
	}
}

// IsCachingOpportunity reports whether an endpoint has enough traffic, is read-dominated and is
// reliable enough for response caching to pay off.
func IsCachingOpportunity(ep *EndpointAccumulator, criteria configs.CachingCriteria) bool {
	return ep.RequestCount >= criteria.MinRequests &&
		ep.GetRatio() >= criteria.MinGetRatio &&
		ep.ErrorRatio() <= criteria.MaxErrorRate
}

func buildCachingAnalysis(acc *Accumulators, cfg configs.AnalysisConfig) ([]models.CachingOpportunity, models.PotentialSavings) {
	opportunities := make([]models.CachingOpportunity, 0)
	var savings models.PotentialSavings

	for _, ep := range acc.Endpoints() {
		if !IsCachingOpportunity(ep, cfg.CachingCriteria) {
			continue
		}
		requestsSaved := mathx.RoundInt(float64(ep.RequestCount) * cacheEffectiveness)
		costPerRequest := ep.CostTotal / float64(ep.RequestCount)
		costSavings := mathx.Round(float64(requestsSaved)*costPerRequest, costPrecision)

		opportunities = append(opportunities, models.CachingOpportunity{
			Endpoint:                 ep.Endpoint,
			PotentialCacheHitRate:    mathx.RoundInt(ep.GetRatio() * percentPerRatio),
			CurrentRequests:          ep.RequestCount,
			PotentialRequestsSaved:   requestsSaved,
			EstimatedCostSavingsUSD:  costSavings,
			RecommendedTTLMinutes:    cfg.CachingCriteria.DefaultTTLMinutes,
			RecommendationConfidence: cacheConfidence,
		})

		savings.RequestsEliminated += requestsSaved
		savings.CostSavingsUSD += costSavings
		savings.PerformanceImprovementMs += mathx.RoundInt(ep.AvgResponseTime() * float64(requestsSaved))
	}
	savings.CostSavingsUSD = mathx.Round(savings.CostSavingsUSD, costPrecision)

	return opportunities, savings
}

// buildRecommendations lists caching suggestions, then the first issues, then an issue count,
// capped at maxRecommendations.
func buildRecommendations(issues []models.PerformanceIssue, opportunities []models.CachingOpportunity) []string {
	recommendations := make([]string, 0, len(opportunities)+maxIssueRecommendations+1)

	for _, op := range opportunities {
		recommendations = append(recommendations, fmt.Sprintf(
			"Consider caching for %s (%d requests, %d%% cache-hit potential)",
			op.Endpoint, op.CurrentRequests, op.PotentialCacheHitRate))
	}

	for i, issue := range issues {
		if i == maxIssueRecommendations {
			break
		}
		recommendations = append(recommendations, issueRecommendation(issue))
	}

	if len(issues) > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Alert: Found %d performance issues", len(issues)))
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func issueRecommendation(issue models.PerformanceIssue) string {
	if issue.Type == models.IssueSlowEndpoint {
		avg := mathx.FormatNumber(derefFloat64(issue.AvgResponseTimeMs))
		if issue.ThresholdMs == nil {
			return fmt.Sprintf("Investigate %s performance (avg %sms)", issue.Endpoint, avg)
		}
		return fmt.Sprintf("Investigate %s performance (avg %sms exceeds %sms threshold)",
			issue.Endpoint, avg, mathx.FormatNumber(*issue.ThresholdMs))
	}
	return fmt.Sprintf("Alert: %s has %s%% error rate",
		issue.Endpoint, mathx.FormatNumber(derefFloat64(issue.ErrorRatePercentage)))
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func copyHourly(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func float64Ptr(v float64) *float64 {
	return &v
}

// thresholdPtr returns nil for an unset threshold so it is left out of the report.
func thresholdPtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func derefFloat64(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
