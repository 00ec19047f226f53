package validation

// MessageValidationFailed - общее сообщение ответа об ошибке проверки.
const MessageValidationFailed = "Validation failed"

// FieldError - нарушение в формате ответа API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    Code   `json:"code"`
}

// ErrorResponse - тело ответа API с ошибками проверки.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// FormatValidationError преобразует ошибку проверки в тело ответа API.
func FormatValidationError(err *Error) ErrorResponse {
	resp := ErrorResponse{Message: MessageValidationFailed, Errors: []FieldError{}}
	if err == nil {
		return resp
	}

	for _, issue := range err.Issues {
		resp.Errors = append(resp.Errors, FieldError{
			Field:   issue.Path.String(),
			Message: issue.Message,
			Code:    issue.Code,
		})
	}
	return resp
}
