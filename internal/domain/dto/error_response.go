package dto

import "time"

// ErrorResponse is the JSON envelope returned for every non-2xx response.
type ErrorResponse struct {
	Message      string    `json:"message" example:"ticker is required"`
	ErrorDetails string    `json:"error,omitempty" example:"strconv.Atoi: parsing \"abc\": invalid syntax"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so the envelope can travel through c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
