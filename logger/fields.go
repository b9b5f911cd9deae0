package logger

import "time"

// Standard field key constants for structured logging.
const (
	FieldComponent      = "component"
	FieldCoordinator    = "coordinator"
	FieldSubscriptionID = "subscription_id"
	FieldPlan           = "plan"
	FieldPlans          = "plans"
	FieldSource         = "source"
	FieldSources        = "sources"
	FieldQueueDepth     = "queue_depth"
	FieldFires          = "fires"
	FieldState          = "state"
	FieldError          = "error"
	FieldDuration       = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("plan", 1, "fires", 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a failed step.
func ErrorFields(state string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldState: state,
		FieldError: err.Error(),
	}
}

// MergeWithDuration adds a duration field to an existing map.
func MergeWithDuration(fields map[string]interface{}, d time.Duration) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
