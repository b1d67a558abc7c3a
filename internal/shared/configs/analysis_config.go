package configs

import (
	"encoding/json"
	"math"
)

// AnalysisConfig parameterizes one analysis run. It is passed by value through every
// component and is never modified after construction.
type AnalysisConfig struct {
	ResponseTimeThresholds SeverityThresholds `mapstructure:"response_time_thresholds" json:"RESPONSE_TIME_THRESHOLDS"`
	ErrorRateThresholds    SeverityThresholds `mapstructure:"error_rate_thresholds" json:"ERROR_RATE_THRESHOLDS"`
	CostConstants          CostConstants      `mapstructure:"cost_constants" json:"COST_CONSTANTS"`
	CachingCriteria        CachingCriteria    `mapstructure:"caching_criteria" json:"CACHING_CRITERIA"`
	ErrorStatusMin         float64            `mapstructure:"error_status_min" json:"ERROR_STATUS_MIN" validate:"required"`
	TopUsersCount          int                `mapstructure:"top_users_count" json:"TOP_USERS_COUNT" validate:"min=0"`
}

// SeverityThresholds are exclusive lower bounds: a value must be strictly greater than
// Medium to be medium, and so on. An unset (NaN) threshold never matches.
type SeverityThresholds struct {
	Medium   float64 `mapstructure:"medium" json:"MEDIUM"`
	High     float64 `mapstructure:"high" json:"HIGH"`
	Critical float64 `mapstructure:"critical" json:"CRITICAL"`
}

// UnmarshalJSON leaves thresholds missing from the document unset.
func (t *SeverityThresholds) UnmarshalJSON(data []byte) error {
	type plain SeverityThresholds
	p := plain{Medium: math.NaN(), High: math.NaN(), Critical: math.NaN()}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = SeverityThresholds(p)
	return nil
}

type CostConstants struct {
	PerRequest     float64      `mapstructure:"per_request" json:"PER_REQUEST" validate:"min=0"`
	PerMsExecution float64      `mapstructure:"per_ms_execution" json:"PER_MS_EXECUTION" validate:"min=0"`
	MemoryTiers    []MemoryTier `mapstructure:"memory_tiers" json:"MEMORY_TIERS" validate:"required,min=1,dive"`
}

// MemoryTier prices responses up to and including MaxKB kilobytes.
type MemoryTier struct {
	MaxKB float64 `mapstructure:"max_kb" json:"maxKB"`
	Cost  float64 `mapstructure:"cost" json:"cost" validate:"min=0"`
}

// UnmarshalJSON treats a missing or null maxKB as unbounded, since JSON cannot carry Infinity.
func (m *MemoryTier) UnmarshalJSON(data []byte) error {
	type plain MemoryTier
	p := plain{MaxKB: math.Inf(1)}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = MemoryTier(p)
	return nil
}

// CachingCriteria is the caching eligibility rule. The ratios are checked by
// validateCachingCriteria, which lets an unset (NaN) ratio through.
type CachingCriteria struct {
	MinRequests       int64   `mapstructure:"min_requests" json:"MIN_REQUESTS" validate:"min=0"`
	MinGetRatio       float64 `mapstructure:"min_get_ratio" json:"MIN_GET_RATIO"`
	MaxErrorRate      float64 `mapstructure:"max_error_rate" json:"MAX_ERROR_RATE"`
	DefaultTTLMinutes int     `mapstructure:"default_ttl_minutes" json:"DEFAULT_TTL_MINUTES" validate:"min=0"`
}

// UnmarshalJSON leaves criteria missing from the document unmet: an omitted MIN_REQUESTS can
// never be reached and an omitted ratio (NaN) never compares true, so no endpoint qualifies.
func (c *CachingCriteria) UnmarshalJSON(data []byte) error {
	type plain CachingCriteria
	p := plain{MinRequests: math.MaxInt64, MinGetRatio: math.NaN(), MaxErrorRate: math.NaN()}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = CachingCriteria(p)
	return nil
}

// DefaultAnalysisConfig returns the built-in analysis defaults.
//
// The caching criteria are deliberately permissive so small demo batches produce
// recommendations; production deployments should raise MinRequests and MinGetRatio.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		ResponseTimeThresholds: SeverityThresholds{Medium: 500, High: 1000, Critical: 2000},
		ErrorRateThresholds:    SeverityThresholds{Medium: 5, High: 10, Critical: 15},
		CostConstants: CostConstants{
			PerRequest:     0.0001,
			PerMsExecution: 0.000002,
			MemoryTiers: []MemoryTier{
				{MaxKB: 1, Cost: 0.00001},
				{MaxKB: 10, Cost: 0.00005},
				{MaxKB: math.Inf(1), Cost: 0.0001},
			},
		},
		CachingCriteria: CachingCriteria{
			MinRequests:       2,
			MinGetRatio:       0.5,
			MaxErrorRate:      0.25,
			DefaultTTLMinutes: 15,
		},
		ErrorStatusMin: 400,
		TopUsersCount:  5,
	}
}

// AnalysisOverride carries per-call replacements for top-level AnalysisConfig groups.
// A nil field keeps the base value.
type AnalysisOverride struct {
	ResponseTimeThresholds *SeverityThresholds `json:"RESPONSE_TIME_THRESHOLDS,omitempty"`
	ErrorRateThresholds    *SeverityThresholds `json:"ERROR_RATE_THRESHOLDS,omitempty"`
	CostConstants          *CostConstants      `json:"COST_CONSTANTS,omitempty"`
	CachingCriteria        *CachingCriteria    `json:"CACHING_CRITERIA,omitempty"`
	ErrorStatusMin         *float64            `json:"ERROR_STATUS_MIN,omitempty"`
	TopUsersCount          *int                `json:"TOP_USERS_COUNT,omitempty" validate:"omitempty,min=0"`
}

// Merge applies override on top of c, shallowly: every group present in the override replaces
// the whole group in c. Supplying only RESPONSE_TIME_THRESHOLDS.MEDIUM therefore drops HIGH and
// CRITICAL rather than inheriting them.
func (c AnalysisConfig) Merge(override AnalysisOverride) AnalysisConfig {
	merged := c
	if override.ResponseTimeThresholds != nil {
		merged.ResponseTimeThresholds = *override.ResponseTimeThresholds
	}
	if override.ErrorRateThresholds != nil {
		merged.ErrorRateThresholds = *override.ErrorRateThresholds
	}
	if override.CostConstants != nil {
		merged.CostConstants = *override.CostConstants
	}
	if override.CachingCriteria != nil {
		merged.CachingCriteria = *override.CachingCriteria
	}
	if override.ErrorStatusMin != nil {
		merged.ErrorStatusMin = *override.ErrorStatusMin
	}
	if override.TopUsersCount != nil {
		merged.TopUsersCount = *override.TopUsersCount
	}
	// merged shares no slice with the base
	merged.CostConstants.MemoryTiers = append([]MemoryTier(nil), merged.CostConstants.MemoryTiers...)
	return merged
}
