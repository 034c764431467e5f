package service

import "fmt"

// PipelineError is a custom error type for pipeline service errors.
type PipelineError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for PipelineError.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pipeline %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("pipeline %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a new PipelineError.
func NewPipelineError(operation, message string, err error) *PipelineError {
	return &PipelineError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
