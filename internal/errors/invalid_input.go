package errors

import "net/http"

var ErrInvalidJSON = &Exception{
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}

var ErrTitleRequired = &Exception{
	Message:    "title is required",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidTaskID = &Exception{
	Message:    "task id must be a 16-bit integer",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidDate = &Exception{
	Message:    "creation_date must be an RFC 3339 timestamp",
	StatusCode: http.StatusBadRequest,
}
