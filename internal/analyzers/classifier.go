package analyzers

import (
	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/configs"
)

// Classify maps value onto a severity band. Thresholds are exclusive lower bounds checked from
// Critical down to Medium, so a value equal to a threshold stays in the band below it.
// Unset (NaN) thresholds never match.
func Classify(value float64, thresholds configs.SeverityThresholds) models.Severity {
	switch {
	case value > thresholds.Critical:
		return models.SeverityCritical
	case value > thresholds.High:
		return models.SeverityHigh
	case value > thresholds.Medium:
		return models.SeverityMedium
	default:
		return models.SeverityNone
	}
}

// ClassifyResponseTime classifies an average response time in milliseconds.
func ClassifyResponseTime(avgMs float64, cfg configs.AnalysisConfig) models.Severity {
	return Classify(avgMs, cfg.ResponseTimeThresholds)
}

// ClassifyErrorRate classifies an error rate given as a percentage.
func ClassifyErrorRate(percent float64, cfg configs.AnalysisConfig) models.Severity {
	return Classify(percent, cfg.ErrorRateThresholds)
}
