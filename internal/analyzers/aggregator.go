package analyzers

import (
	"fmt"
	"math"
	"time"

	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/configs"
	"api-log-analytics/internal/shared/mathx"
)

const methodGET = "GET"

// EndpointAccumulator holds the running statistics of one endpoint during an aggregation pass.
type EndpointAccumulator struct {
	Endpoint        string
	RequestCount    int64
	ResponseTimeSum float64
	MinResponseTime float64
	MaxResponseTime float64
	ErrorCount      int64
	Costs           models.CostRecord

	// CostTotal and CostCount feed cost_per_request only.
	CostTotal float64
	CostCount int64

	methods  *orderedCounts
	statuses *orderedCounts
}

func newEndpointAccumulator(endpoint string) *EndpointAccumulator {
	return &EndpointAccumulator{
		Endpoint:        endpoint,
		MinResponseTime: math.Inf(1),
		MaxResponseTime: 0,
		methods:         newOrderedCounts(),
		statuses:        newOrderedCounts(),
	}
}

// AvgResponseTime is the unrounded mean response time, 0 for an empty accumulator.
func (a *EndpointAccumulator) AvgResponseTime() float64 {
	if a.RequestCount == 0 {
		return 0
	}
	return a.ResponseTimeSum / float64(a.RequestCount)
}

// ErrorRatio is error_count / request_count, 0 for an empty accumulator.
func (a *EndpointAccumulator) ErrorRatio() float64 {
	if a.RequestCount == 0 {
		return 0
	}
	return float64(a.ErrorCount) / float64(a.RequestCount)
}

// GetRatio is the share of GET requests, 0 for an empty accumulator.
func (a *EndpointAccumulator) GetRatio() float64 {
	if a.RequestCount == 0 {
		return 0
	}
	return float64(a.methods.Get(methodGET)) / float64(a.RequestCount)
}

// MethodCount returns how many requests to the endpoint used method.
func (a *EndpointAccumulator) MethodCount(method string) int64 {
	return a.methods.Get(method)
}

// StatusCount returns how many requests to the endpoint ended with status.
func (a *EndpointAccumulator) StatusCount(status float64) int64 {
	return a.statuses.Get(statusKey(status))
}

// Accumulators is the result of one aggregation pass. It is read-only once Aggregate returns.
type Accumulators struct {
	ValidCount         int64
	TotalResponseTime  float64
	TotalErrorCount    int64
	MinTimestamp       time.Time
	MaxTimestamp       time.Time
	HourlyDistribution map[string]int64
	TotalCosts         models.CostRecord

	endpoints     []*EndpointAccumulator
	endpointIndex map[string]*EndpointAccumulator
	users         *orderedCounts
}

func newAccumulators() *Accumulators {
	return &Accumulators{
		HourlyDistribution: make(map[string]int64),
		endpointIndex:      make(map[string]*EndpointAccumulator),
		users:              newOrderedCounts(),
	}
}

// Endpoints returns the endpoint accumulators in first-sighting order.
func (a *Accumulators) Endpoints() []*EndpointAccumulator {
	return a.endpoints
}

// Endpoint returns the accumulator of endpoint, or nil if it was never seen.
func (a *Accumulators) Endpoint(endpoint string) *EndpointAccumulator {
	return a.endpointIndex[endpoint]
}

// UserIDs returns user ids in first-sighting order.
func (a *Accumulators) UserIDs() []string {
	return a.users.Keys()
}

// UserRequestCount returns the number of requests made by userID.
func (a *Accumulators) UserRequestCount(userID string) int64 {
	return a.users.Get(userID)
}

func (a *Accumulators) endpoint(endpoint string) *EndpointAccumulator {
	acc, ok := a.endpointIndex[endpoint]
	if !ok {
		acc = newEndpointAccumulator(endpoint)
		a.endpointIndex[endpoint] = acc
		a.endpoints = append(a.endpoints, acc)
	}
	return acc
}

// Aggregator folds validated entries into Accumulators in a single pass.
//
//go:generate mockgen -source=aggregator.go -destination=./mocks/aggregator_mock.go -package=mocks
type Aggregator interface {
	Aggregate(entries []*models.LogEntry, cfg configs.AnalysisConfig) *Accumulators
}

type aggregator struct {
	costEstimator CostEstimator
}

func NewAggregator(costEstimator CostEstimator) Aggregator {
	return &aggregator{costEstimator: costEstimator}
}

// Aggregate visits entries in input order. It never fails: entries are already validated.
func (g *aggregator) Aggregate(entries []*models.LogEntry, cfg configs.AnalysisConfig) *Accumulators {
	acc := newAccumulators()
	for _, entry := range entries {
		g.add(acc, entry, cfg)
	}
	return acc
}

func (g *aggregator) add(acc *Accumulators, entry *models.LogEntry, cfg configs.AnalysisConfig) {
	isError := entry.StatusCode >= cfg.ErrorStatusMin

	if acc.ValidCount == 0 || entry.Timestamp.Before(acc.MinTimestamp) {
		acc.MinTimestamp = entry.Timestamp
	}
	if acc.ValidCount == 0 || entry.Timestamp.After(acc.MaxTimestamp) {
		acc.MaxTimestamp = entry.Timestamp
	}
	acc.ValidCount++
	acc.TotalResponseTime += entry.ResponseTimeMs
	if isError {
		acc.TotalErrorCount++
	}
	acc.HourlyDistribution[hourBucket(entry.Timestamp)]++

	ep := acc.endpoint(entry.Endpoint)
	ep.RequestCount++
	ep.ResponseTimeSum += entry.ResponseTimeMs
	ep.MinResponseTime = math.Min(ep.MinResponseTime, entry.ResponseTimeMs)
	ep.MaxResponseTime = math.Max(ep.MaxResponseTime, entry.ResponseTimeMs)
	if isError {
		ep.ErrorCount++
	}
	ep.methods.Inc(entry.Method)
	ep.statuses.Inc(statusKey(entry.StatusCode))

	cost := g.costEstimator.Estimate(entry, cfg.CostConstants)
	ep.Costs.Add(cost)
	ep.CostTotal += cost.TotalCost
	ep.CostCount++
	acc.TotalCosts.Add(cost)

	acc.users.Inc(entry.UserID)
}

// hourBucket returns the UTC hour of t as "HH:00".
func hourBucket(t time.Time) string {
	return fmt.Sprintf("%02d:00", t.UTC().Hour())
}

// statusKey is the canonical string form of a status code, e.g. "200" or "-1.5".
func statusKey(status float64) string {
	// -0 == 0, and assigning the literal clears the sign bit so -0 and 0 share the key "0"
	if status == 0 {
		status = 0
	}
	return mathx.FormatNumber(status)
}
