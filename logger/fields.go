package logger

// Field keys shared across packages so log queries stay stable.
const (
	FieldComponent   = "component"
	FieldTraceID     = "trace_id"
	FieldRequestID   = "request_id"
	FieldRecordingID = "recording_id"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldChunkIndex  = "chunk_index"
	FieldChunkCount  = "chunk_count"
	FieldStage       = "stage"
	FieldProvider    = "provider"
)

// Fields builds a field map from alternating key-value pairs. Pairs with a
// non-string key and a trailing odd value are dropped.
//
//	log.Info("chunk exported", logger.Fields(logger.FieldChunkIndex, 3))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}
