package ingestors_test

import (
	"encoding/json"
	"strings"
	"testing"

	"api-log-analytics/internal/ingestors"
	"api-log-analytics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBatch_Array(t *testing.T) {
	t.Parallel()

	records, err := ingestors.DecodeBatch(strings.NewReader(`[{"endpoint":"/a"}, null, 5, "x"]`))
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, map[string]any{"endpoint": "/a"}, records[0])
	assert.Nil(t, records[1])
	assert.Equal(t, json.Number("5"), records[2])
}

func TestDecodeBatch_OutOfRangeNumberStaysInItsRecord(t *testing.T) {
	t.Parallel()

	body := `[
		{"timestamp": "2025-01-15T10:00:00Z", "response_time_ms": 100, "status_code": 200},
		{"timestamp": "2025-01-15T10:05:00Z", "response_time_ms": 1e400, "status_code": 200}
	]`

	records, err := ingestors.DecodeBatchBytes([]byte(body))
	require.NoError(t, err)
	require.Len(t, records, 2)

	validator := ingestors.NewRecordValidator()
	_, ok := validator.Validate(records[0])
	assert.True(t, ok)
	_, ok = validator.Validate(records[1])
	assert.False(t, ok)
}

func TestDecodeBatch_EmptyArray(t *testing.T) {
	t.Parallel()

	records, err := ingestors.DecodeBatch(strings.NewReader(" [] "))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeBatch_NotSequence(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{}`, `null`, `42`, `"logs"`, `true`, ``, `   `} {
		t.Run(body, func(t *testing.T) {
			records, err := ingestors.DecodeBatch(strings.NewReader(body))

			require.Error(t, err)
			assert.Nil(t, records)
			assert.True(t, ingestors.IsInputNotSequence(err))
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "ANL_1000", svcErr.Code)
			assert.Equal(t, "invalid_argument", svcErr.Category)
		})
	}
}

func TestDecodeBatch_MalformedJSON(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`[{invalid json}]`, `[1, 2`, `[] []`} {
		t.Run(body, func(t *testing.T) {
			_, err := ingestors.DecodeBatch(strings.NewReader(body))

			require.Error(t, err)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "ANL_1001", svcErr.Code)
			assert.False(t, ingestors.IsInputNotSequence(err))
		})
	}
}

func TestDecodeBatch_NilReader(t *testing.T) {
	t.Parallel()

	_, err := ingestors.DecodeBatch(nil)
	assert.True(t, ingestors.IsInputNotSequence(err))
}
