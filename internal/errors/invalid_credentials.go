package errors

import "net/http"

var ErrInvalidCredentials = &Exception{
	Message:    "Incorrect username or password",
	StatusCode: http.StatusUnauthorized,
}
