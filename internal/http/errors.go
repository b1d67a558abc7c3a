package http

import (
	"fmt"

	"api-log-analytics/internal/shared/svcerrors"
)

const (
	codeUnsupportedContentType = "ANL_1003"
	codeBodyTooLarge           = "ANL_1004"

	codeInternalReportEncodingFailed = "ANL_9000"
)

// errUnsupportedContentType returns an error when the request body is not declared as JSON.
func errUnsupportedContentType(contentType string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnsupportedContentType, "content type must be application/json", fmt.Errorf("got %q", contentType))
}

// errBodyTooLarge returns an error when the request body exceeds the configured limit.
func errBodyTooLarge(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeBodyTooLarge, "request body too large", cause)
}

// errInternalReportEncodingFailed returns an error when a report cannot be encoded as JSON.
func errInternalReportEncodingFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportEncodingFailed, fmt.Errorf("reportEncodingFailed: %w", cause))
}
