package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"api-log-analytics/internal/analyzers"
	"api-log-analytics/internal/ingestors"
	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/configs"
)

// defaultMaxBodyBytes caps request bodies when the server config leaves the limit at 0.
const defaultMaxBodyBytes = 10 << 20

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type analyzeLogsHandler struct {
	analysisService analyzers.AnalysisService
	maxBodyBytes    int64
}

func NewAnalyzeLogsHandler(analysisService analyzers.AnalysisService, maxBodyBytes int64) AppHttpHandler {
	return &analyzeLogsHandler{analysisService: analysisService, maxBodyBytes: bodyLimit(maxBodyBytes)}
}

// Handle processes POST /analyze requests: the body is a JSON array of raw log records,
// analyzed with the service's configured defaults.
func (h *analyzeLogsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, err := readBody(w, r, h.maxBodyBytes)
	if err != nil {
		return err
	}

	records, err := ingestors.DecodeBatchBytes(body)
	if err != nil {
		return err
	}
	setRecordCount(w, len(records))

	report, svcErr := h.analysisService.Analyze(r.Context(), records, configs.AnalysisOverride{})
	if svcErr != nil {
		return svcErr
	}
	return writeReport(w, report)
}

type analyzeCustomHandler struct {
	analysisService analyzers.AnalysisService
	maxBodyBytes    int64
}

func NewAnalyzeCustomHandler(analysisService analyzers.AnalysisService, maxBodyBytes int64) AppHttpHandler {
	return &analyzeCustomHandler{analysisService: analysisService, maxBodyBytes: bodyLimit(maxBodyBytes)}
}

// Handle processes POST /analyze/custom requests with body {"logs": [...], "config": {...}}.
// config is shallowly merged over the service defaults for this call only.
func (h *analyzeCustomHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, err := readBody(w, r, h.maxBodyBytes)
	if err != nil {
		return err
	}

	records, rawConfig, err := ingestors.DecodeAnalyzeRequest(body)
	if err != nil {
		return err
	}
	setRecordCount(w, len(records))

	override, svcErr := analyzers.ParseOverride(rawConfig)
	if svcErr != nil {
		return svcErr
	}

	report, svcErr := h.analysisService.Analyze(r.Context(), records, override)
	if svcErr != nil {
		return svcErr
	}
	return writeReport(w, report)
}

func bodyLimit(maxBodyBytes int64) int64 {
	if maxBodyBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return maxBodyBytes
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if !isJSONContent(r) {
		return nil, errUnsupportedContentType(contentType(r))
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errBodyTooLarge(err)
		}
		return nil, err
	}
	metricHTTPRequestBodyBytes.Observe(float64(len(body)))
	return body, nil
}

// writeReport encodes the whole report before writing so that an encoding failure can still
// produce an error response.
func writeReport(w http.ResponseWriter, report *models.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return errInternalReportEncodingFailed(err)
	}

	w.Header().Set("Content-Type", mediaTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return nil
}
