package domain

import "fmt"

// Error types for consistent error handling across the BFA.

// ErrorDetail is the payload of Northwind's structured error body.
type ErrorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id"`
	Timestamp string         `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// ErrorBody is the structured error body: {"error": {...}}.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// APIError indicates Northwind answered with a non-2xx status.
// Transport failures are never represented by this type.
type APIError struct {
	Status int
	Body   ErrorBody
}

func (e *APIError) Error() string {
	if e.Body.Error.Message != "" {
		return e.Body.Error.Message
	}
	return fmt.Sprintf("API error %d", e.Status)
}

// ErrValidation indicates invalid user input. Message is shown to the user verbatim.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrSubmission indicates a transfer form passed validation but Northwind
// rejected or never received it. Message is shown to the user verbatim.
type ErrSubmission struct {
	Message string
	Err     error
}

func (e *ErrSubmission) Error() string {
	return e.Message
}

func (e *ErrSubmission) Unwrap() error {
	return e.Err
}
