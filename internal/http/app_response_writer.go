package http

import (
	"net/http"

	"api-log-analytics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter wraps the http.ResponseWriter so that middlewares can see what the handler
// did: the status, the service error if any, and how many records were analyzed.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError    *svcerrors.ServiceError
	recordCount int
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

func (w *appResponseWriter) SetRecordCount(n int) {
	w.recordCount = n
}

func (w *appResponseWriter) RecordCount() int {
	return w.recordCount
}

// setRecordCount records n on w when w is an appResponseWriter.
func setRecordCount(w http.ResponseWriter, n int) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetRecordCount(n)
	}
}
