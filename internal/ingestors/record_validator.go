package ingestors

import (
	"api-log-analytics/internal/models"
)

// RecordValidator turns one untrusted record into a canonical LogEntry.
//
//go:generate mockgen -source=record_validator.go -destination=./mocks/record_validator_mock.go -package=mocks
type RecordValidator interface {
	// Validate returns the canonical entry, or ok=false when the record must be dropped.
	Validate(raw models.RawRecord) (entry *models.LogEntry, ok bool)
}

type recordValidator struct{}

func NewRecordValidator() RecordValidator {
	return &recordValidator{}
}

// Validate rejects a record when it is not an object, its timestamp does not parse, its
// response time is not a non-negative number, its status code is not a number, or either
// size is negative. Status codes are not range checked: out-of-protocol values are kept so
// they show up in the report. Non-finite numbers are rejected because the report has to be
// JSON encodable.
func (v *recordValidator) Validate(raw models.RawRecord) (*models.LogEntry, bool) {
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return nil, false
	}

	timestamp, ok := toTimestamp(field(obj, models.FieldTimestamp))
	if !ok {
		return nil, false
	}

	responseTime := toNumber(field(obj, models.FieldResponseTimeMs))
	if !isFinite(responseTime) || responseTime < 0 {
		return nil, false
	}

	statusCode := toNumber(field(obj, models.FieldStatusCode))
	if !isFinite(statusCode) {
		return nil, false
	}

	requestSize := toSize(field(obj, models.FieldRequestSizeBytes))
	responseSize := toSize(field(obj, models.FieldResponseSizeBytes))
	if !isFinite(requestSize) || !isFinite(responseSize) || requestSize < 0 || responseSize < 0 {
		return nil, false
	}

	return &models.LogEntry{
		Timestamp:         timestamp,
		Endpoint:          textField(obj, models.FieldEndpoint, models.DefaultEndpoint),
		Method:            textField(obj, models.FieldMethod, models.DefaultMethod),
		ResponseTimeMs:    responseTime,
		StatusCode:        statusCode,
		UserID:            textField(obj, models.FieldUserID, models.DefaultUserID),
		RequestSizeBytes:  requestSize,
		ResponseSizeBytes: responseSize,
	}, true
}

func field(obj map[string]any, name string) (any, bool) {
	v, ok := obj[name]
	return v, ok
}

func textField(obj map[string]any, name, fallback string) string {
	v, ok := obj[name]
	return toText(v, ok, fallback)
}
