package models

// CostRecord is the estimated monetary cost (USD) of serving requests.
// For a single entry it comes from the cost estimator; accumulators sum them.
type CostRecord struct {
	RequestCost   float64
	ExecutionCost float64
	MemoryCost    float64
	TotalCost     float64
}

// Add folds other into c.
func (c *CostRecord) Add(other CostRecord) {
	c.RequestCost += other.RequestCost
	c.ExecutionCost += other.ExecutionCost
	c.MemoryCost += other.MemoryCost
	c.TotalCost += other.TotalCost
}
