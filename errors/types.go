package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Input tree errors
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeNotADirectory  ErrorCode = "NOT_A_DIRECTORY"
	ErrCodeRenameConflict ErrorCode = "RENAME_CONFLICT"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Command execution errors
	ErrCodeCommandFailed      ErrorCode = "COMMAND_FAILED"
	ErrCodeTempRenameStranded ErrorCode = "TEMP_RENAME_STRANDED"

	// Git errors
	ErrCodeGitDirty ErrorCode = "GIT_DIRTY"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// KebabError represents a structured error with context
type KebabError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *KebabError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KebabError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *KebabError) WithDetail(key string, value interface{}) *KebabError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Detail returns a detail value, or nil when it is not set.
func (e *KebabError) Detail(key string) interface{} {
	if e.Details == nil {
		return nil
	}
	return e.Details[key]
}

// ToJSON converts the error to JSON
func (e *KebabError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new KebabError
func New(code ErrorCode, message string) *KebabError {
	return &KebabError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a KebabError
func Wrap(err error, code ErrorCode, message string) *KebabError {
	return &KebabError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific KebabError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	kebabErr, ok := err.(*KebabError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	if kebabErr.Code == code {
		return true
	}
	return Is(kebabErr.Cause, code)
}

// GetCode extracts the outermost error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	kebabErr, ok := err.(*KebabError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return kebabErr.Code
}

// As returns the outermost KebabError in the chain.
func As(err error) (*KebabError, bool) {
	for err != nil {
		if kebabErr, ok := err.(*KebabError); ok {
			return kebabErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}
