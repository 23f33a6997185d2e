package errors

import (
	"net/http"
)

// Exception is the outward face of a failure: a status code and a short
// message, never the underlying cause.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

var ErrInternal = &Exception{
	Message:    "internal server error",
	StatusCode: http.StatusInternalServerError,
}
