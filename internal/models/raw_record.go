package models

// RawRecord is one untrusted element of an input batch, exactly as decoded from JSON.
//
// It is usually a map[string]any with some of the fields
//
//	timestamp, endpoint, method, response_time_ms, status_code,
//	user_id, request_size_bytes, response_size_bytes
//
// but may be anything at all (null, a number, an array). Only the record validator looks
// inside a RawRecord; everything downstream works on *LogEntry.
type RawRecord any

const (
	FieldTimestamp         = "timestamp"
	FieldEndpoint          = "endpoint"
	FieldMethod            = "method"
	FieldResponseTimeMs    = "response_time_ms"
	FieldStatusCode        = "status_code"
	FieldUserID            = "user_id"
	FieldRequestSizeBytes  = "request_size_bytes"
	FieldResponseSizeBytes = "response_size_bytes"
)
