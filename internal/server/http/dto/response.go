package dto

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// StatusResponse is a bare success envelope.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Fail builds an error envelope.
func Fail(message, code string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message, Error: code}
}
