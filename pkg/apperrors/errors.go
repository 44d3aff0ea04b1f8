package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so transport code can pick the right status
// and handlers can decide between failing the request and degrading.
type Kind string

const (
	KindValidation Kind = "validation_error"
	KindTimeout    Kind = "timeout_error"
	KindUpstream   Kind = "upstream_error"
	KindInternal   Kind = "internal_error"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Timeout(message string, err error) *Error {
	return &Error{Kind: KindTimeout, Message: message, Err: err}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsTimeout(err error) bool    { return KindOf(err) == KindTimeout }
func IsUpstream(err error) bool   { return KindOf(err) == KindUpstream }
