package analyzers

import (
	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/configs"
)

const bytesPerKB = 1024

// CostEstimator prices a single validated entry.
//
//go:generate mockgen -source=cost_estimator.go -destination=./mocks/cost_estimator_mock.go -package=mocks
type CostEstimator interface {
	Estimate(entry *models.LogEntry, constants configs.CostConstants) models.CostRecord
}

type costEstimator struct{}

func NewCostEstimator() CostEstimator {
	return &costEstimator{}
}

// Estimate returns the request, execution and memory cost of entry.
// The memory cost is taken from the first tier whose MaxKB is >= the response size in KB;
// it is zero when no tier matches.
func (e *costEstimator) Estimate(entry *models.LogEntry, constants configs.CostConstants) models.CostRecord {
	requestCost := constants.PerRequest
	executionCost := entry.ResponseTimeMs * constants.PerMsExecution
	memoryCost := memoryTierCost(entry.ResponseSizeBytes/bytesPerKB, constants.MemoryTiers)

	return models.CostRecord{
		RequestCost:   requestCost,
		ExecutionCost: executionCost,
		MemoryCost:    memoryCost,
		TotalCost:     requestCost + executionCost + memoryCost,
	}
}

func memoryTierCost(kb float64, tiers []configs.MemoryTier) float64 {
	for _, tier := range tiers {
		if kb <= tier.MaxKB {
			return tier.Cost
		}
	}
	return 0
}
