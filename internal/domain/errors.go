package domain

import "errors"

type ErrorCode string

const (
	ErrorCodeDecode        ErrorCode = "DECODE_ERROR"
	ErrorCodeUnknownAction ErrorCode = "UNKNOWN_ACTION"
	ErrorCodeResolution    ErrorCode = "RESOLUTION_ERROR"
	ErrorCodePost          ErrorCode = "POST_ERROR"
	ErrorCodeStore         ErrorCode = "STORE_ERROR"
)

// ErrNotFound is returned by directory lookups when the queried user does
// not exist. Callers decide whether that is fatal.
var ErrNotFound = errors.New("not found")

type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the domain error code from err, or empty if err is not a
// DomainError.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
