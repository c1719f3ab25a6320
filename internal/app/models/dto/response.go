package dto

// APIResponse is the envelope of every successful response
type APIResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Ingested 42 courses"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewMessageResponse builds a successful envelope that only carries a message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
	}
}
