package response

// ErrorBody carries a machine readable code next to the human message.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Response struct {
	Success bool        `json:"success"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Error(code, message string, details interface{}) Response {
	return Response{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
