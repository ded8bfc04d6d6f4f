// Package apperr provides standardized error classification for the API
// and the external collaborators (LLM service, Google Sheets, local slot).
package apperr

import (
	"errors"
	"fmt"
)

// Code represents standardized internal error codes.
type Code string

const (
	// Configuration errors: a credential or identifier for an external
	// collaborator is missing. Fatal for the requested operation, never
	// retried automatically.
	CodeConfigMissing Code = "CONFIG_MISSING"

	// Transport/service errors: the collaborator was unreachable or
	// rejected the request. State is left unchanged; the operator may
	// retry manually.
	CodeServiceFailed Code = "SERVICE_FAILED"

	// Malformed-input errors: a document we were handed does not parse
	// or has the wrong shape.
	CodeParseFailed Code = "PARSE_FAILED"
	CodeBadShape    Code = "BAD_SHAPE"
	CodeNoRecords   Code = "NO_RECORDS"

	// Partial-row errors: one remote row could not be decoded. Isolated
	// to that row, the rest of the fetch succeeds.
	CodeRowDecodeFailed Code = "ROW_DECODE_FAILED"

	CodeNotFound Code = "NOT_FOUND"
)

// Error carries a code alongside the message so handlers can tell the
// operator whether to retry (nothing happened) or review their data.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Retriable reports whether retrying the same operation can succeed
// without the operator changing anything first.
func (e *Error) Retriable() bool {
	return e.Code == CodeServiceFailed
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from err, or empty when err is not an *Error.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
