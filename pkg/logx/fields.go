package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldAsset           = "asset"
	FieldAssets          = "assets"
	FieldChannel         = "channel"
	FieldCycleID         = "cycle-id"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldPolicy          = "policy"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldTierFrom        = "tier-from"
	FieldTierTo          = "tier-to"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
