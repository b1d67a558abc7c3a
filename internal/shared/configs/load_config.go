package configs

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"api-log-analytics/internal/shared/validators"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LOGANALYTICS"

// LoadConfig reads configuration from file and validates it.
// Values can be overridden by LOGANALYTICS_* environment variables (optionally from a .env file),
// e.g. LOGANALYTICS_SERVER_PORT=9090.
var LoadConfig = func(configPath string) (*Config, error) {
	_ = godotenv.Load() // optional

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setAnalysisDefaults(v)

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	validate.RegisterStructValidation(validateThresholdOrder, SeverityThresholds{})
	validate.RegisterStructValidation(validateCachingCriteria, CachingCriteria{})
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %s", validators.FormatErrors(err))
	}

	return &cfg, nil
}

// ParseAnalysisOverride decodes a JSON override document (keys as in AnalysisConfig's json tags)
// and validates the groups it contains.
func ParseAnalysisOverride(data []byte) (AnalysisOverride, error) {
	var override AnalysisOverride
	if len(strings.TrimSpace(string(data))) == 0 {
		return override, nil
	}
	if err := json.Unmarshal(data, &override); err != nil {
		return AnalysisOverride{}, fmt.Errorf("failed to unmarshal analysis override: %w", err)
	}
	if err := ValidateAnalysisOverride(override); err != nil {
		return AnalysisOverride{}, err
	}
	return override, nil
}

// ValidateAnalysisOverride checks the groups present in override.
// Threshold ordering is not enforced here: a partial threshold group is legal.
func ValidateAnalysisOverride(override AnalysisOverride) error {
	validate := validators.New()
	validate.RegisterStructValidation(validateCachingCriteria, CachingCriteria{})
	if err := validate.Struct(&override); err != nil {
		return fmt.Errorf("analysis override validation failed: %s", validators.FormatErrors(err))
	}
	return nil
}

func setAnalysisDefaults(v *viper.Viper) {
	d := DefaultAnalysisConfig()

	v.SetDefault("analysis.response_time_thresholds.medium", d.ResponseTimeThresholds.Medium)
	v.SetDefault("analysis.response_time_thresholds.high", d.ResponseTimeThresholds.High)
	v.SetDefault("analysis.response_time_thresholds.critical", d.ResponseTimeThresholds.Critical)

	v.SetDefault("analysis.error_rate_thresholds.medium", d.ErrorRateThresholds.Medium)
	v.SetDefault("analysis.error_rate_thresholds.high", d.ErrorRateThresholds.High)
	v.SetDefault("analysis.error_rate_thresholds.critical", d.ErrorRateThresholds.Critical)

	v.SetDefault("analysis.cost_constants.per_request", d.CostConstants.PerRequest)
	v.SetDefault("analysis.cost_constants.per_ms_execution", d.CostConstants.PerMsExecution)
	tiers := make([]map[string]any, 0, len(d.CostConstants.MemoryTiers))
	for _, tier := range d.CostConstants.MemoryTiers {
		tiers = append(tiers, map[string]any{"max_kb": tier.MaxKB, "cost": tier.Cost})
	}
	v.SetDefault("analysis.cost_constants.memory_tiers", tiers)

	v.SetDefault("analysis.caching_criteria.min_requests", d.CachingCriteria.MinRequests)
	v.SetDefault("analysis.caching_criteria.min_get_ratio", d.CachingCriteria.MinGetRatio)
	v.SetDefault("analysis.caching_criteria.max_error_rate", d.CachingCriteria.MaxErrorRate)
	v.SetDefault("analysis.caching_criteria.default_ttl_minutes", d.CachingCriteria.DefaultTTLMinutes)

	v.SetDefault("analysis.error_status_min", d.ErrorStatusMin)
	v.SetDefault("analysis.top_users_count", d.TopUsersCount)
}

// validateThresholdOrder enforces MEDIUM < HIGH < CRITICAL for configured (file) thresholds.
func validateThresholdOrder(sl validators.StructLevel) {
	t := sl.Current().Interface().(SeverityThresholds)
	if math.IsNaN(t.Medium) || math.IsNaN(t.High) || math.IsNaN(t.Critical) {
		sl.ReportError(t.Medium, "Medium", "Medium", "required", "")
		return
	}
	if !(t.Medium < t.High) {
		sl.ReportError(t.High, "High", "High", "gtfield", "Medium")
	}
	if !(t.High < t.Critical) {
		sl.ReportError(t.Critical, "Critical", "Critical", "gtfield", "High")
	}
}

// validateCachingCriteria keeps set ratios within [0, 1].
func validateCachingCriteria(sl validators.StructLevel) {
	c := sl.Current().Interface().(CachingCriteria)
	checkRatio(sl, c.MinGetRatio, "MinGetRatio")
	checkRatio(sl, c.MaxErrorRate, "MaxErrorRate")
}

func checkRatio(sl validators.StructLevel, ratio float64, name string) {
	switch {
	case math.IsNaN(ratio):
	case ratio < 0:
		sl.ReportError(ratio, name, name, "min", "0")
	case ratio > 1:
		sl.ReportError(ratio, name, name, "max", "1")
	}
}
