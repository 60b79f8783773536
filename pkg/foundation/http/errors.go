package http

import (
	"fmt"
	"net/http"
)

// ErrorMalformedBody is returned when the body of a net/http request cannot be read or parsed
// into form fields.
type ErrorMalformedBody struct {
	Err error
}

func (e ErrorMalformedBody) Error() string {
	return fmt.Sprintf("malformed request body: %v", e.Err)
}

func (e ErrorMalformedBody) Unwrap() error {
	return e.Err
}

func (ErrorMalformedBody) StatusCode() int {
	return http.StatusBadRequest
}

// ErrorNilRequest is returned when there is no net/http request to snapshot.
type ErrorNilRequest struct{}

func (ErrorNilRequest) Error() string {
	return "no http request to snapshot"
}

func (ErrorNilRequest) StatusCode() int {
	return http.StatusInternalServerError
}
