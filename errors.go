package gbf

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the failures a GBF reader or writer can report,
// matching the error taxonomy fields are validated against.
type ErrorCode string

const (
	ErrMagicMismatch         ErrorCode = "magic_mismatch"
	ErrHeaderLengthInvalid   ErrorCode = "header_length_invalid"
	ErrHeaderJSONInvalid     ErrorCode = "header_json_invalid"
	ErrHeaderCRCMismatch     ErrorCode = "header_crc_mismatch"
	ErrUnsupportedVersion    ErrorCode = "unsupported_version"
	ErrUnsupportedEndianness ErrorCode = "unsupported_endianness"
	ErrUnsupportedOrder      ErrorCode = "unsupported_order"
	ErrFieldLayoutInvalid    ErrorCode = "field_layout_invalid"
	ErrPayloadCRCMismatch    ErrorCode = "payload_crc_mismatch"
	ErrDecompressionFailed   ErrorCode = "decompression_failed"
	ErrPathNotFound          ErrorCode = "path_not_found"
	ErrTypeMismatch          ErrorCode = "type_mismatch"
	ErrIOError               ErrorCode = "io_error"
	ErrInvalidArgument       ErrorCode = "invalid_argument"
	ErrOutOfMemory           ErrorCode = "out_of_memory"
)

// Error is the concrete error type returned by every GBF operation
// that fails for a reason the format itself defines. Code lets callers
// branch on failure category with errors.As without string matching.
type Error struct {
	Code ErrorCode
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("gbf: %s: %s: %v", e.Code, e.msg, e.err)
	}
	return fmt.Sprintf("gbf: %s: %s", e.Code, e.msg)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is a *Error with the same Code, so
// errors.Is(err, &gbf.Error{Code: gbf.ErrPathNotFound}) works as a
// sentinel-style check without exposing package-level singletons.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, msg: fmt.Sprintf(format, args...)}
}

func wrapError(code ErrorCode, msg string, err error) *Error {
	return &Error{Code: code, msg: msg, err: err}
}

// CodeOf extracts the ErrorCode from err if it is (or wraps) a *Error,
// and reports ok=false otherwise.
func CodeOf(err error) (code ErrorCode, ok bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code, true
	}
	return "", false
}
