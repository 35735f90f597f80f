package errors

import "net/http"

var ErrFetchFailed = &Exception{
	Message:    "remote task fetch failed",
	StatusCode: http.StatusBadGateway,
}
