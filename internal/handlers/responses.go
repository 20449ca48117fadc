package handlers

// SuccessResponse is the envelope for every 2xx payload.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for every non-2xx payload. Errors carries
// the individual validation messages when the failure is a 400.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func success(message string, data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Message: message, Data: data}
}

func failure(message string, errs ...string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message, Errors: errs}
}
