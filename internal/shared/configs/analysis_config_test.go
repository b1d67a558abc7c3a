package configs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisConfig_Merge_EmptyOverrideKeepsBase(t *testing.T) {
	t.Parallel()

	base := DefaultAnalysisConfig()
	merged := base.Merge(AnalysisOverride{})

	assert.Equal(t, base, merged)
}

func TestAnalysisConfig_Merge_ReplacesGroupWholesale(t *testing.T) {
	t.Parallel()

	override, err := ParseAnalysisOverride([]byte(`{"RESPONSE_TIME_THRESHOLDS": {"MEDIUM": 100}}`))
	require.NoError(t, err)

	merged := DefaultAnalysisConfig().Merge(override)

	assert.Equal(t, 100.0, merged.ResponseTimeThresholds.Medium)
	assert.True(t, math.IsNaN(merged.ResponseTimeThresholds.High), "HIGH must not be inherited")
	assert.True(t, math.IsNaN(merged.ResponseTimeThresholds.Critical), "CRITICAL must not be inherited")
	assert.Equal(t, DefaultAnalysisConfig().ErrorRateThresholds, merged.ErrorRateThresholds)
}

func TestAnalysisConfig_Merge_ScalarGroups(t *testing.T) {
	t.Parallel()

	override, err := ParseAnalysisOverride([]byte(`{"ERROR_STATUS_MIN": 500, "TOP_USERS_COUNT": 2}`))
	require.NoError(t, err)

	merged := DefaultAnalysisConfig().Merge(override)

	assert.Equal(t, 500.0, merged.ErrorStatusMin)
	assert.Equal(t, 2, merged.TopUsersCount)
	assert.Equal(t, DefaultAnalysisConfig().CostConstants, merged.CostConstants)
}

func TestAnalysisConfig_Merge_DoesNotMutateBase(t *testing.T) {
	t.Parallel()

	base := DefaultAnalysisConfig()
	override, err := ParseAnalysisOverride([]byte(`{"CACHING_CRITERIA": {"MIN_REQUESTS": 10, "MIN_GET_RATIO": 0.9}}`))
	require.NoError(t, err)

	merged := base.Merge(override)
	merged.CostConstants.MemoryTiers[0].Cost = 42

	assert.Equal(t, int64(2), base.CachingCriteria.MinRequests)
	assert.Equal(t, 0.00001, base.CostConstants.MemoryTiers[0].Cost)
	assert.Equal(t, int64(10), merged.CachingCriteria.MinRequests)
	assert.Equal(t, 0.9, merged.CachingCriteria.MinGetRatio)
}

func TestParseAnalysisOverride_CachingCriteriaOmittedKeysAreUnmet(t *testing.T) {
	t.Parallel()

	override, err := ParseAnalysisOverride([]byte(`{"CACHING_CRITERIA": {"DEFAULT_TTL_MINUTES": 30}}`))
	require.NoError(t, err)
	require.NotNil(t, override.CachingCriteria)

	criteria := *override.CachingCriteria
	assert.Equal(t, int64(math.MaxInt64), criteria.MinRequests)
	assert.True(t, math.IsNaN(criteria.MinGetRatio))
	assert.True(t, math.IsNaN(criteria.MaxErrorRate))
	assert.Equal(t, 30, criteria.DefaultTTLMinutes)
}

func TestParseAnalysisOverride_CachingCriteriaComplete(t *testing.T) {
	t.Parallel()

	override, err := ParseAnalysisOverride([]byte(`{"CACHING_CRITERIA": {
		"MIN_REQUESTS": 0, "MIN_GET_RATIO": 0, "MAX_ERROR_RATE": 1, "DEFAULT_TTL_MINUTES": 5
	}}`))
	require.NoError(t, err)

	assert.Equal(t, &CachingCriteria{MinRequests: 0, MinGetRatio: 0, MaxErrorRate: 1, DefaultTTLMinutes: 5}, override.CachingCriteria)
}

func TestParseAnalysisOverride_MemoryTiers(t *testing.T) {
	t.Parallel()

	override, err := ParseAnalysisOverride([]byte(`{"COST_CONSTANTS": {
		"PER_REQUEST": 0.0002,
		"PER_MS_EXECUTION": 0.000001,
		"MEMORY_TIERS": [{"maxKB": 2, "cost": 0.00002}, {"maxKB": null, "cost": 0.0003}]
	}}`))
	require.NoError(t, err)
	require.NotNil(t, override.CostConstants)

	tiers := override.CostConstants.MemoryTiers
	require.Len(t, tiers, 2)
	assert.Equal(t, 2.0, tiers[0].MaxKB)
	assert.True(t, math.IsInf(tiers[1].MaxKB, 1))
	assert.Equal(t, 0.0003, tiers[1].Cost)
}

func TestParseAnalysisOverride_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "malformed json", json: `{"TOP_USERS_COUNT":`, want: "failed to unmarshal"},
		{name: "negative top users", json: `{"TOP_USERS_COUNT": -1}`, want: "topuserscount (min=0)"},
		{name: "cost constants without tiers", json: `{"COST_CONSTANTS": {"PER_REQUEST": 0.1}}`, want: "memorytiers (required)"},
		{name: "ratio above one", json: `{"CACHING_CRITERIA": {"MAX_ERROR_RATE": 2}}`, want: "maxerrorrate (max=1)"},
		{name: "negative ratio", json: `{"CACHING_CRITERIA": {"MIN_GET_RATIO": -0.1}}`, want: "mingetratio (min=0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysisOverride([]byte(tt.json))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseAnalysisOverride_Blank(t *testing.T) {
	t.Parallel()

	override, err := ParseAnalysisOverride([]byte("  "))
	require.NoError(t, err)
	assert.Equal(t, AnalysisOverride{}, override)
}
