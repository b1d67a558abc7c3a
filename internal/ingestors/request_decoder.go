package ingestors

import (
	"encoding/json"
	"errors"

	"api-log-analytics/internal/models"
)

// AnalyzeRequest is the envelope of a custom analysis call: the batch plus an optional
// configuration override.
type AnalyzeRequest struct {
	Logs   json.RawMessage `json:"logs"`
	Config json.RawMessage `json:"config"`
}

// DecodeAnalyzeRequest splits an envelope into its batch and its raw override document.
// A body that is not an object, or whose logs member is missing or not an array, fails with the
// fatal input error.
func DecodeAnalyzeRequest(buf []byte) ([]models.RawRecord, json.RawMessage, error) {
	var req AnalyzeRequest
	if err := json.Unmarshal(buf, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil, errInputNotSequence(err)
		}
		return nil, nil, errMalformedJSON(err)
	}

	records, err := DecodeBatchBytes(req.Logs)
	if err != nil {
		return nil, nil, err
	}
	return records, req.Config, nil
}
