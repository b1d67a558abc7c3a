package models

import "time"

const (
	DefaultEndpoint = "unknown"
	DefaultMethod   = "UNKNOWN"
	DefaultUserID   = "anonymous"
)

// LogEntry is a validated API request record. Every field is populated and well typed;
// entries are never mutated after validation.
type LogEntry struct {
	Timestamp         time.Time
	Endpoint          string
	Method            string
	ResponseTimeMs    float64
	StatusCode        float64
	UserID            string
	RequestSizeBytes  float64
	ResponseSizeBytes float64
}
