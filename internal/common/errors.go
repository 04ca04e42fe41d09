package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors. The pipeline attributes each group failure to
// exactly one of the step sentinels (OCR, extraction, scoring, persistence);
// malformed assistant output wraps ErrValidation inside the step's sentinel.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	ErrOCR         = errors.New("ocr service failure")
	ErrExtraction  = errors.New("extraction failed")
	ErrScoring     = errors.New("scoring failed")
	ErrPersistence = errors.New("persistence failed")
	ErrValidation  = errors.New("validation failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// StepError ties a failure to a pipeline step sentinel while keeping the
// original cause inspectable via errors.Is/As.
func StepError(sentinel error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
