package log

// Field names shared across components so log queries line up.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldSnapshot = "snapshot_id"
	FieldSource   = "source"
	FieldRows     = "rows"
	FieldChart    = "chart"
	FieldCacheHit = "cache_hit"
)

// Component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentIngest  = "ingest"
	ComponentDataset = "dataset"
	ComponentCache   = "cache"
)

// Operation names.
const (
	OpIngest   = "ingest"
	OpRefresh  = "refresh"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
