package errors

import "net/http"

var ErrStorageFailure = &Exception{
	Message:    "Database error",
	StatusCode: http.StatusInternalServerError,
}
