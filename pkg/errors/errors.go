// Package errors provides structured errors for posixfs setup and command
// failures. Errors returned by individual filesystem calls are not wrapped
// here; they travel as wire.Errno values.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrorCode identifies a failure class.
type ErrorCode string

const (
	// Configuration
	ErrCodeInvalidConfig    ErrorCode = "INVALID_CONFIG"
	ErrCodeMissingConfig    ErrorCode = "MISSING_CONFIG"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"
	ErrCodeConfigLoad       ErrorCode = "CONFIG_LOAD"
	ErrCodeConfigSave       ErrorCode = "CONFIG_SAVE"

	// Connection setup
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	ErrCodeCredentialsLoad  ErrorCode = "CONNECTION_CREDENTIALS"
	ErrCodeServiceUnreach   ErrorCode = "CONNECTION_UNREACHABLE"

	// Filesystem
	ErrCodeMountFailed     ErrorCode = "MOUNT_FAILED"
	ErrCodeUnmountFailed   ErrorCode = "UNMOUNT_FAILED"
	ErrCodeMountPointBusy  ErrorCode = "MOUNT_POINT_NOT_EMPTY"
	ErrCodeMountPointInval ErrorCode = "MOUNT_POINT_INVALID"

	// Volume administration
	ErrCodeVolumeCreate ErrorCode = "VOLUME_CREATE"
	ErrCodeVolumeName   ErrorCode = "VOLUME_NAME"

	// Protocol
	ErrCodeProtocol ErrorCode = "PROTOCOL_VIOLATION"

	// State
	ErrCodeAlreadyStarted ErrorCode = "ALREADY_STARTED"
	ErrCodeNotInitialized ErrorCode = "NOT_INITIALIZED"
	ErrCodeShutdown       ErrorCode = "SHUTDOWN_IN_PROGRESS"

	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorCategory groups codes for reporting.
type ErrorCategory string

const (
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryConnection    ErrorCategory = "connection"
	CategoryFilesystem    ErrorCategory = "filesystem"
	CategoryVolume        ErrorCategory = "volume"
	CategoryProtocol      ErrorCategory = "protocol"
	CategoryState         ErrorCategory = "state"
	CategoryInternal      ErrorCategory = "internal"
)

// FSError is a structured error with context and metadata.
type FSError struct {
	Code     ErrorCode              `json:"code"`
	Category ErrorCategory          `json:"category"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`

	Context   map[string]string `json:"context,omitempty"`
	Cause     error             `json:"-"`
	Timestamp time.Time         `json:"timestamp"`

	Component string `json:"component"`
	Operation string `json:"operation,omitempty"`

	UserFacing bool `json:"user_facing"`
}

// Error implements the error interface.
func (e *FSError) Error() string {
	var msg string
	switch {
	case e.Component != "" && e.Operation != "":
		msg = fmt.Sprintf("[%s:%s] %s: %s", e.Component, e.Operation, e.Code, e.Message)
	case e.Component != "":
		msg = fmt.Sprintf("[%s] %s: %s", e.Component, e.Code, e.Message)
	default:
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FSError) Unwrap() error {
	return e.Cause
}

// Is matches another *FSError by code.
func (e *FSError) Is(target error) bool {
	if t, ok := target.(*FSError); ok {
		return e.Code == t.Code
	}
	return false
}

// String returns a detailed representation for logging.
func (e *FSError) String() string {
	parts := []string{
		fmt.Sprintf("Code=%s", e.Code),
		fmt.Sprintf("Category=%s", e.Category),
		fmt.Sprintf("Message=%q", e.Message),
	}
	if e.Component != "" {
		parts = append(parts, fmt.Sprintf("Component=%s", e.Component))
	}
	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("Operation=%s", e.Operation))
	}
	if len(e.Context) > 0 {
		ctx, _ := json.Marshal(e.Context)
		parts = append(parts, fmt.Sprintf("Context=%s", ctx))
	}
	if len(e.Details) > 0 {
		details, _ := json.Marshal(e.Details)
		parts = append(parts, fmt.Sprintf("Details=%s", details))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("Cause=%q", e.Cause.Error()))
	}
	return fmt.Sprintf("FSError{%s}", strings.Join(parts, ", "))
}

// JSON returns the error as a JSON document.
func (e *FSError) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal error: %s"}`, err.Error())
	}
	return string(data)
}

// NewError creates an error with defaults derived from the code.
func NewError(code ErrorCode, message string) *FSError {
	return &FSError{
		Code:       code,
		Category:   GetCategory(code),
		Message:    message,
		Timestamp:  time.Now(),
		Details:    make(map[string]interface{}),
		Context:    make(map[string]string),
		UserFacing: IsUserFacingByDefault(code),
	}
}

// Wrap is NewError(code, message).WithCause(cause).
func Wrap(cause error, code ErrorCode, message string) *FSError {
	return NewError(code, message).WithCause(cause)
}

// GetCategory derives the category from a code prefix.
func GetCategory(code ErrorCode) ErrorCategory {
	s := string(code)
	switch {
	case strings.HasPrefix(s, "INVALID_CONFIG"), strings.HasPrefix(s, "MISSING_CONFIG"),
		strings.HasPrefix(s, "CONFIG_"):
		return CategoryConfiguration
	case strings.HasPrefix(s, "CONNECTION_"):
		return CategoryConnection
	case strings.HasPrefix(s, "MOUNT_"), strings.HasPrefix(s, "UNMOUNT_"):
		return CategoryFilesystem
	case strings.HasPrefix(s, "VOLUME_"):
		return CategoryVolume
	case strings.HasPrefix(s, "PROTOCOL_"):
		return CategoryProtocol
	case strings.HasPrefix(s, "ALREADY_"), strings.HasPrefix(s, "NOT_INITIALIZED"),
		strings.HasPrefix(s, "SHUTDOWN_"):
		return CategoryState
	default:
		return CategoryInternal
	}
}

// IsUserFacingByDefault reports whether the message is meant for the
// operator running the command.
func IsUserFacingByDefault(code ErrorCode) bool {
	switch code {
	case ErrCodeInvalidConfig, ErrCodeMissingConfig, ErrCodeConfigValidation,
		ErrCodeCredentialsLoad, ErrCodeServiceUnreach, ErrCodeMountFailed,
		ErrCodeMountPointBusy, ErrCodeMountPointInval, ErrCodeVolumeName:
		return true
	}
	return false
}

func (e *FSError) WithContext(key, value string) *FSError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func (e *FSError) WithDetail(key string, value interface{}) *FSError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *FSError) WithComponent(component string) *FSError {
	e.Component = component
	return e
}

func (e *FSError) WithOperation(operation string) *FSError {
	e.Operation = operation
	return e
}

func (e *FSError) WithCause(cause error) *FSError {
	e.Cause = cause
	return e
}

// GetRecommendation returns a hint for the operator, or "" when there is
// nothing specific to suggest.
func (e *FSError) GetRecommendation() string {
	switch e.Code {
	case ErrCodeCredentialsLoad:
		return "Check that the certificate chain, private key and root bundle are readable PEM files " +
			"and that the key matches the certificate."
	case ErrCodeServiceUnreach:
		return "Verify the service address and that the PacioFS service is running."
	case ErrCodeMountPointBusy:
		return "Mount onto an existing empty directory."
	case ErrCodeMountPointInval:
		return "Create the mount point directory first."
	case ErrCodeMountFailed:
		return "Check mount point permissions and ensure FUSE is installed."
	case ErrCodeVolumeName:
		return "Volume names must be non-empty and must not contain ':' or '/'."
	case ErrCodeInvalidConfig, ErrCodeConfigValidation:
		return "Check your configuration file syntax and required parameters."
	}
	return ""
}

// UserFacingMessage returns the message with the recommendation appended.
func (e *FSError) UserFacingMessage() string {
	msg := e.Message
	if rec := e.GetRecommendation(); rec != "" {
		msg += ". " + rec
	}
	return msg
}
