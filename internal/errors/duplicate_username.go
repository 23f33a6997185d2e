package errors

import "net/http"

var ErrDuplicateUsername = &Exception{
	Message:    "Username already exists",
	StatusCode: http.StatusBadRequest,
}
