package errors

import (
	"errors"
	"fmt"
)

// Re-export standard errors package functions.
var (
	As     = errors.As
	Is     = errors.Is
	New    = errors.New
	Unwrap = errors.Unwrap
)

// Error kinds, per the flat enumeration of the data-model's error policy.
var (
	ErrAlloc              = errors.New("allocation failure")
	ErrInvalidArg         = errors.New("invalid argument")
	ErrNotFound           = errors.New("not found")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrShapeMismatch      = errors.New("shape mismatch")
	ErrIO                 = errors.New("storage i/o error")
	ErrFormat             = errors.New("format error")
	ErrUnsupportedOp      = errors.New("unsupported operation")
	ErrPluginMissing      = errors.New("storage plugin missing")
	ErrRefcountUnderflow  = errors.New("refcount underflow")
	ErrUUIDInvalid        = errors.New("invalid uuid")
)

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// WrapWithCode wraps an error with a specific error kind.
func WrapWithCode(err error, code error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	wrapped := fmt.Errorf(format+": %w", append(args, err)...)
	return fmt.Errorf("%w: %w", code, wrapped)
}

// GetErrorCode extracts the error kind from an error, or nil if it doesn't
// carry one of ours.
func GetErrorCode(err error) error {
	if err == nil {
		return nil
	}

	codes := []error{
		ErrAlloc,
		ErrInvalidArg,
		ErrNotFound,
		ErrTypeMismatch,
		ErrShapeMismatch,
		ErrIO,
		ErrFormat,
		ErrUnsupportedOp,
		ErrPluginMissing,
		ErrRefcountUnderflow,
		ErrUUIDInvalid,
	}

	for _, code := range codes {
		if errors.Is(err, code) {
			return code
		}
	}

	return nil
}

// GetErrorCodeString returns a short upper-snake-case name for the error kind.
func GetErrorCodeString(err error) string {
	switch GetErrorCode(err) {
	case ErrAlloc:
		return "ALLOC"
	case ErrInvalidArg:
		return "INVALID_ARG"
	case ErrNotFound:
		return "NOT_FOUND"
	case ErrTypeMismatch:
		return "TYPE_MISMATCH"
	case ErrShapeMismatch:
		return "SHAPE_MISMATCH"
	case ErrIO:
		return "IO"
	case ErrFormat:
		return "FORMAT"
	case ErrUnsupportedOp:
		return "UNSUPPORTED_OP"
	case ErrPluginMissing:
		return "PLUGIN_MISSING"
	case ErrRefcountUnderflow:
		return "REFCOUNT_UNDERFLOW"
	case ErrUUIDInvalid:
		return "UUID_INVALID"
	default:
		return "UNKNOWN_ERROR"
	}
}
