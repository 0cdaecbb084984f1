package response

// ErrorResponse is the JSON envelope for every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Error wraps a human-readable message into the standard envelope.
func Error(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}
