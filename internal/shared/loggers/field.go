package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldClient     = "client"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldRecordCount   = "record_count"
	FieldValidCount    = "valid_count"
	FieldInvalidCount  = "invalid_count"
	FieldEndpointCount = "endpoint_count"
	FieldFileKey       = "file_key"
)
