package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalEntries   = 6400 // valid records in the batch
	invalidEntries = 16   // records appended with a negative response time
)

var (
	hours     = []string{"10", "11", "12", "13"}
	endpoints = []string{"/api/users", "/api/products", "/api/orders", "/api/search"}
	users     = []string{"user_001", "user_002", "user_003", "user_004"}
)

// ### End - fixed configs

type logRecord struct {
	Timestamp         string  `json:"timestamp"`
	Endpoint          string  `json:"endpoint"`
	Method            string  `json:"method"`
	ResponseTimeMs    float64 `json:"response_time_ms"`
	StatusCode        int     `json:"status_code"`
	UserID            string  `json:"user_id"`
	RequestSizeBytes  int     `json:"request_size_bytes"`
	ResponseSizeBytes int     `json:"response_size_bytes"`
}

type report struct {
	Summary struct {
		TotalRequests   int64 `json:"total_requests"`
		InvalidLogCount int64 `json:"invalid_log_count"`
	} `json:"summary"`
	EndpointStats []struct {
		Endpoint     string `json:"endpoint"`
		RequestCount int64  `json:"request_count"`
	} `json:"endpoint_stats"`
	HourlyDistribution map[string]int64 `json:"hourly_distribution"`
	TopUsersByRequests []struct {
		UserID       string `json:"user_id"`
		RequestCount int64  `json:"request_count"`
	} `json:"top_users_by_requests"`
	Recommendations []string `json:"recommendations"`
}

// main runs the e2e scenario: 001_basic_batch_analysis
//
// The scenario generates one deterministic batch of API request logs and posts it to a running
// server many times in parallel, then once more to /analyze/custom with an override.
//
// What it tests:
//   - Batch analysis via POST /analyze and POST /analyze/custom
//   - Invalid records are counted, not analyzed
//   - Concurrent analyses of the same batch produce byte-identical reports
//   - Configuration overrides apply to one request only
//
// Expected results:
//   - Every request returns 200
//   - summary.total_requests = 6400, summary.invalid_log_count = 16
//   - Four endpoints with 1600 requests each, in first-seen order
//   - Four hourly buckets (10:00 to 13:00 UTC) with 1600 requests each
//   - Four top users with 1600 requests each (two with TOP_USERS_COUNT = 2)
//   - At most five recommendations
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the analytics API server
	dateUTC := "2025-01-15"            // Date used for generating record timestamps (UTC)
	requests := 200                    // Number of POST /analyze requests carrying the same batch
	parallel := 8                      // Number of concurrent requests

	fmt.Println("Starting e2e scenario: 001_basic_batch_analysis")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("DATE_UTC: %s\n", dateUTC)
	fmt.Printf("REQUESTS: %d\n", requests)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_ENTRIES: %d (+%d invalid)\n", totalEntries, invalidEntries)
	fmt.Println()

	batch, err := json.Marshal(generateBatch(dateUTC))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to generate batch: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated batch (%d bytes)\n", len(batch))
	fmt.Println()

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var reference []byte
	var okRequest int64         // 200 status code
	var mismatchedRequest int64 // body differs from the first response

	for i := 1; i <= requests; i++ {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(requestIndex int) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			body, err := post(baseURL+"/analyze", batch)
			if err != nil {
				mu.Lock()
				errors = append(errors, fmt.Errorf("request %d: %w", requestIndex, err))
				mu.Unlock()
				fmt.Fprintf(os.Stderr, "ERROR: Request %d failed: %v\n", requestIndex, err)
				return
			}
			atomic.AddInt64(&okRequest, 1)

			mu.Lock()
			if reference == nil {
				reference = body
			} else if !bytes.Equal(reference, body) {
				atomic.AddInt64(&mismatchedRequest, 1)
			}
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d requests failed\n", len(errors))
		os.Exit(1)
	}
	if n := atomic.LoadInt64(&mismatchedRequest); n > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d responses differ from the first report\n", n)
		os.Exit(1)
	}

	if err := verifyReport(reference, 4); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: /analyze report: %v\n", err)
		os.Exit(1)
	}

	customBody := fmt.Sprintf(`{"logs": %s, "config": {"TOP_USERS_COUNT": 2}}`, batch)
	custom, err := post(baseURL+"/analyze/custom", []byte(customBody))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: /analyze/custom failed: %v\n", err)
		os.Exit(1)
	}
	if err := verifyReport(custom, 2); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: /analyze/custom report: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("OK request: %d\n", atomic.LoadInt64(&okRequest))
	fmt.Printf("Identical reports: %d\n", atomic.LoadInt64(&okRequest))
	fmt.Println("Scenario completed successfully")
}

func generateBatch(dateUTC string) []logRecord {
	records := make([]logRecord, 0, totalEntries+invalidEntries)
	for i := 0; i < totalEntries; i++ {
		bucket := i % 64
		hour := hours[bucket/16]
		combo := bucket % 16
		endpoint := endpoints[combo/4]
		user := users[combo%4]

		method := "GET"
		if endpoint == "/api/orders" {
			method = "POST"
		}
		status := 200
		if i%25 == 0 {
			status = 500
		}

		round := i / 64
		records = append(records, logRecord{
			Timestamp:         fmt.Sprintf("%sT%s:%02d:%02d.%03dZ", dateUTC, hour, round%60, (round/60)%60, (bucket*17+round)%1000),
			Endpoint:          endpoint,
			Method:            method,
			ResponseTimeMs:    float64(40 + (i*37)%1200),
			StatusCode:        status,
			UserID:            user,
			RequestSizeBytes:  200 + i%300,
			ResponseSizeBytes: 512 + (i*131)%16384,
		})
	}
	for i := 0; i < invalidEntries; i++ {
		records = append(records, logRecord{
			Timestamp:      fmt.Sprintf("%sT10:00:00Z", dateUTC),
			Endpoint:       endpoints[i%len(endpoints)],
			Method:         "GET",
			ResponseTimeMs: -100,
			StatusCode:     200,
			UserID:         users[i%len(users)],
		})
	}
	return records
}

func verifyReport(body []byte, wantTopUsers int) error {
	var r report
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("failed to decode report: %w", err)
	}

	if r.Summary.TotalRequests != totalEntries {
		return fmt.Errorf("total_requests = %d, want %d", r.Summary.TotalRequests, totalEntries)
	}
	if r.Summary.InvalidLogCount != invalidEntries {
		return fmt.Errorf("invalid_log_count = %d, want %d", r.Summary.InvalidLogCount, invalidEntries)
	}

	perBucket := int64(totalEntries / len(endpoints))
	if len(r.EndpointStats) != len(endpoints) {
		return fmt.Errorf("endpoint_stats has %d rows, want %d", len(r.EndpointStats), len(endpoints))
	}
	for i, stat := range r.EndpointStats {
		if stat.Endpoint != endpoints[i] || stat.RequestCount != perBucket {
			return fmt.Errorf("endpoint_stats[%d] = %s/%d, want %s/%d", i, stat.Endpoint, stat.RequestCount, endpoints[i], perBucket)
		}
	}

	for _, hour := range hours {
		key := hour + ":00"
		if got := r.HourlyDistribution[key]; got != perBucket {
			return fmt.Errorf("hourly_distribution[%s] = %d, want %d", key, got, perBucket)
		}
	}

	if len(r.TopUsersByRequests) != wantTopUsers {
		return fmt.Errorf("top_users_by_requests has %d rows, want %d", len(r.TopUsersByRequests), wantTopUsers)
	}
	for _, u := range r.TopUsersByRequests {
		if u.RequestCount != perBucket {
			return fmt.Errorf("user %s has %d requests, want %d", u.UserID, u.RequestCount, perBucket)
		}
	}

	if len(r.Recommendations) > 5 {
		return fmt.Errorf("%d recommendations, want at most 5", len(r.Recommendations))
	}
	return nil
}

func post(url string, body []byte) ([]byte, error) {
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, data)
	}
	return data, nil
}
