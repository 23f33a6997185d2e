package errors

import "net/http"

var ErrPasswordTooLong = &Exception{
	Message:    "password must be at most 72 bytes",
	StatusCode: http.StatusBadRequest,
}
