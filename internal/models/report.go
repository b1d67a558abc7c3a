package models

// Report is the analytics result for one batch of API request logs. It is assembled once by
// the report builder and never modified afterwards.
//
// Example JSON (abridged):
//
//	{
//	  "summary": {
//	    "total_requests": 15,
//	    "invalid_log_count": 1,
//	    "time_range": {"start": "2025-01-15T10:00:00.000Z", "end": "2025-01-15T11:45:00.000Z"},
//	    "avg_response_time_ms": 412.3,
//	    "error_rate_percentage": 13.3
//	  },
//	  "endpoint_stats": [{"endpoint": "/api/users", "request_count": 6, ...}],
//	  "performance_issues": [{"type": "slow_endpoint", "endpoint": "/api/search", ...}],
//	  "recommendations": ["Consider caching for /api/users (6 requests, 83% cache-hit potential)"],
//	  "hourly_distribution": {"10:00": 9, "11:00": 6},
//	  "top_users_by_requests": [{"user_id": "user_001", "request_count": 5}],
//	  "cost_analysis": {"total_cost_usd": 0.0123, ...},
//	  "caching_opportunities": [...],
//	  "total_potential_savings": {"requests_eliminated": 5, ...}
//	}
type Report struct {
	Summary               Summary              `json:"summary"`
	EndpointStats         []EndpointStat       `json:"endpoint_stats"`
	PerformanceIssues     []PerformanceIssue   `json:"performance_issues"`
	Recommendations       []string             `json:"recommendations"`
	HourlyDistribution    map[string]int64     `json:"hourly_distribution"`
	TopUsersByRequests    []UserRequestCount   `json:"top_users_by_requests"`
	CostAnalysis          CostAnalysis         `json:"cost_analysis"`
	CachingOpportunities  []CachingOpportunity `json:"caching_opportunities"`
	TotalPotentialSavings PotentialSavings     `json:"total_potential_savings"`
}

type Summary struct {
	TotalRequests       int64      `json:"total_requests"`
	InvalidLogCount     int64      `json:"invalid_log_count"`
	TimeRange           *TimeRange `json:"time_range"`
	AvgResponseTimeMs   float64    `json:"avg_response_time_ms"`
	ErrorRatePercentage float64    `json:"error_rate_percentage"`
}

// TimeRange holds ISO-8601 instants (UTC, millisecond precision).
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type EndpointStat struct {
	Endpoint          string  `json:"endpoint"`
	RequestCount      int64   `json:"request_count"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	SlowestRequestMs  float64 `json:"slowest_request_ms"`
	FastestRequestMs  float64 `json:"fastest_request_ms"`
	ErrorCount        int64   `json:"error_count"`
	MostCommonStatus  float64 `json:"most_common_status"`
}

type IssueType string

const (
	IssueSlowEndpoint  IssueType = "slow_endpoint"
	IssueHighErrorRate IssueType = "high_error_rate"
)

// PerformanceIssue is either a slow_endpoint issue (AvgResponseTimeMs, ThresholdMs) or a
// high_error_rate issue (ErrorRatePercentage).
type PerformanceIssue struct {
	Type                IssueType `json:"type"`
	Endpoint            string    `json:"endpoint"`
	AvgResponseTimeMs   *float64  `json:"avg_response_time_ms,omitempty"`
	ThresholdMs         *float64  `json:"threshold_ms,omitempty"`
	ErrorRatePercentage *float64  `json:"error_rate_percentage,omitempty"`
	Severity            Severity  `json:"severity"`
}

type UserRequestCount struct {
	UserID       string `json:"user_id"`
	RequestCount int64  `json:"request_count"`
}

type CostAnalysis struct {
	TotalCostUSD             float64        `json:"total_cost_usd"`
	CostBreakdown            CostBreakdown  `json:"cost_breakdown"`
	CostByEndpoint           []EndpointCost `json:"cost_by_endpoint"`
	OptimizationPotentialUSD float64        `json:"optimization_potential_usd"`
}

type CostBreakdown struct {
	RequestCosts   float64 `json:"request_costs"`
	ExecutionCosts float64 `json:"execution_costs"`
	MemoryCosts    float64 `json:"memory_costs"`
}

type EndpointCost struct {
	Endpoint       string  `json:"endpoint"`
	TotalCost      float64 `json:"total_cost"`
	CostPerRequest float64 `json:"cost_per_request"`
}

type CachingOpportunity struct {
	Endpoint                 string  `json:"endpoint"`
	PotentialCacheHitRate    int64   `json:"potential_cache_hit_rate"`
	CurrentRequests          int64   `json:"current_requests"`
	PotentialRequestsSaved   int64   `json:"potential_requests_saved"`
	EstimatedCostSavingsUSD  float64 `json:"estimated_cost_savings_usd"`
	RecommendedTTLMinutes    int     `json:"recommended_ttl_minutes"`
	RecommendationConfidence string  `json:"recommendation_confidence"`
}

type PotentialSavings struct {
	RequestsEliminated       int64   `json:"requests_eliminated"`
	CostSavingsUSD           float64 `json:"cost_savings_usd"`
	PerformanceImprovementMs int64   `json:"performance_improvement_ms"`
}
