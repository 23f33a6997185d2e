package errors

import "net/http"

var ErrInvalidStatus = &Exception{
	Message:    "Allowed statuses are: open, in-progress, closed",
	StatusCode: http.StatusBadRequest,
}
