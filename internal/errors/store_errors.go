package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrDuplicateTaskID = &Exception{
	Message:    "task id already exists",
	StatusCode: http.StatusConflict,
}

// ErrStoreUnavailable wraps any storage failure that is neither a missing
// record nor an id conflict.
var ErrStoreUnavailable = &Exception{
	Message:    "task store unavailable",
	StatusCode: http.StatusServiceUnavailable,
}
