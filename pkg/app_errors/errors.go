package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrSlugConflict  = errors.New("event with the same slug already exists")

	ErrValidation    = errors.New("validation error")
	ErrRequiredField = errors.New("required field missing")
	ErrInvalidSlug   = errors.New("invalid slug")
	ErrInvalidDate   = errors.New("invalid date format. Use YYYY-MM-DD or a valid date string")
	ErrInvalidTime   = errors.New("invalid time format. Use HH:MM (24-hour) or HH:MM AM/PM")

	// ErrConnectionConfiguration 代表儲存位址缺失或格式錯誤，程序啟動時即應終止
	ErrConnectionConfiguration = errors.New("connection configuration error")
	// ErrConnectionAttempt 代表單次連線失敗，下一個呼叫者會重新嘗試
	ErrConnectionAttempt = errors.New("connection attempt failed")
)

// FieldError 將錯誤歸屬到單一欄位
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError 彙整多個欄位錯誤，Fields 為欄位名稱到訊息的對應
type ValidationError struct {
	Fields map[string]string
	errs   []error
}

func NewValidationError(fieldErrs ...*FieldError) *ValidationError {
	v := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		v.Add(fe)
	}
	return v
}

func (v *ValidationError) Add(fe *FieldError) {
	if _, exists := v.Fields[fe.Field]; exists {
		return
	}
	v.Fields[fe.Field] = fe.Message
	v.errs = append(v.errs, fe)
}

func (v *ValidationError) Empty() bool {
	return len(v.Fields) == 0
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.Fields[k]))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Unwrap 讓 errors.Is 可以比對 ErrValidation 以及各欄位的 sentinel error
func (v *ValidationError) Unwrap() []error {
	return append([]error{ErrValidation}, v.errs...)
}
