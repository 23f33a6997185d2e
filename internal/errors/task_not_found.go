package errors

import (
	"fmt"
	"net/http"
)

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

func NewTaskNotFound(id string) *Exception {
	return &Exception{
		Message:    fmt.Sprintf("Task with ID %s not found", id),
		StatusCode: http.StatusNotFound,
	}
}
