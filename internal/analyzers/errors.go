package analyzers

import (
	"api-log-analytics/internal/shared/svcerrors"
)

const (
	codeInvalidOverride = "ANL_1002"
)

// errInvalidOverride returns an error when a per-call configuration override cannot be used.
func errInvalidOverride(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidOverride, "invalid analysis config override", cause)
}
