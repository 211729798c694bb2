package apperrors

import "fmt"

// ValidationError 欄位級驗證錯誤，Fields 為欄位名稱到訊息的映射
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
