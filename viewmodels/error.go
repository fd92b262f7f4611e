package viewmodels

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(status int, err error, message string) ErrorResponse {
	res := ErrorResponse{
		Status:  status,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}

	return res
}
