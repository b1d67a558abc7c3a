package ingestors

import (
	"api-log-analytics/internal/shared/svcerrors"
)

const (
	codeInputNotSequence = "ANL_1000"
	codeMalformedJSON    = "ANL_1001"
)

// errInputNotSequence is returned (wrapped in a ServiceError) when a batch is not a JSON array.
func errInputNotSequence(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInputNotSequence, "input must be an array of log objects", cause)
}

// errMalformedJSON returns an error when the batch cannot be parsed as JSON at all.
func errMalformedJSON(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedJSON, "invalid json", cause)
}

// IsInputNotSequence reports whether err is the fatal non-array input error.
func IsInputNotSequence(err error) bool {
	svcErr, ok := svcerrors.AsServiceError(err)
	return ok && svcErr.Code == codeInputNotSequence
}
