package common

// MessageResponse is the body of every plain reply: success, 5xx, 503 and 429
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries one message per failing field, keyed by
// the field's JSON name
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// NewMessageResponse creates a response with a simple message
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// NewValidationErrorResponse creates a 400 body from per-field messages
func NewValidationErrorResponse(message string, errors map[string]string) ValidationErrorResponse {
	return ValidationErrorResponse{
		Message: message,
		Errors:  errors,
	}
}
