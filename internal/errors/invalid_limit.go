package errors

import "net/http"

var ErrInvalidLimit = &Exception{
	Message:    "skip and limit must not be negative",
	StatusCode: http.StatusBadRequest,
}
