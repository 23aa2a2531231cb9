package dto

import "time"

// ErrorResponse is the standardized JSON error body returned by every
// API endpoint. ErrorDetails carries the underlying error text when
// one is available; it is omitted from the JSON otherwise.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid limit parameter"`
	ErrorDetails string    `json:"error,omitempty" example:"strconv.Atoi: parsing"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so handlers and middleware can
// pass an ErrorResponse through gin's error chain.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse with the current timestamp,
// attaching err's text when err is non-nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
