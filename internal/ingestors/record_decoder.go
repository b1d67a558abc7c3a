package ingestors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"api-log-analytics/internal/models"
)

// DecodeBatch reads one JSON document from r and returns its elements in order.
// The document must be an array; anything else (object, null, scalar, empty body) fails with
// the fatal input error before any record is looked at. Elements are not inspected here.
func DecodeBatch(r io.Reader) ([]models.RawRecord, error) {
	if r == nil {
		return nil, errInputNotSequence(nil)
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errMalformedJSON(err)
	}
	return DecodeBatchBytes(buf)
}

// DecodeBatchBytes is DecodeBatch over an in-memory document.
func DecodeBatchBytes(buf []byte) ([]models.RawRecord, error) {
	trimmed := bytes.TrimSpace(buf)
	if len(trimmed) == 0 {
		return nil, errInputNotSequence(nil)
	}

	var doc any
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	// numbers stay json.Number so that an out-of-range value only invalidates its own record
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, errMalformedJSON(err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errMalformedJSON(fmt.Errorf("unexpected data after top-level value"))
	}

	return ToRawRecords(doc)
}

// ToRawRecords converts an already decoded JSON value into a batch.
func ToRawRecords(doc any) ([]models.RawRecord, error) {
	items, ok := doc.([]any)
	if !ok {
		return nil, errInputNotSequence(fmt.Errorf("got %s", jsonKind(doc)))
	}
	records := make([]models.RawRecord, len(items))
	for i, item := range items {
		records[i] = item
	}
	return records, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
