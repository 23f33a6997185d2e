package errors

import "net/http"

var ErrUnauthenticated = &Exception{
	Message:    "Invalid authentication credentials",
	StatusCode: http.StatusUnauthorized,
}
