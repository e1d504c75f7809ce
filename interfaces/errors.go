////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package interfaces

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnknownError is the fallback text used when the server supplies no message.
const UnknownError = "Unknown error"

// TransportError is a network or serialization failure. The low-level cause
// is preserved and can be unwrapped.
type TransportError struct {
	Op    string
	Cause error
}

// NewTransportError wraps cause as a TransportError for the given operation.
func NewTransportError(op string, cause error) *TransportError {
	return &TransportError{Op: op, Cause: cause}
}

func (e *TransportError) Error() string {
	if e.Cause == nil {
		return "An error occurred: " + UnknownError
	}
	return "An error occurred: " + e.Cause.Error()
}

// Unwrap returns the low-level cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// BusinessError is a well-formed response that signals a rejection. Message
// is the server text verbatim, or UnknownError when none was supplied.
// StatusCode is zero when the rejection came in a 2xx body.
type BusinessError struct {
	Op         string
	Message    string
	StatusCode int
}

// NewBusinessError builds a BusinessError, substituting UnknownError for an
// empty message.
func NewBusinessError(op, message string, statusCode int) *BusinessError {
	if message == "" {
		message = UnknownError
	}
	return &BusinessError{Op: op, Message: message, StatusCode: statusCode}
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// ValidationKind classifies locally rejected input.
type ValidationKind uint8

const (
	// Empty is message content that is empty or whitespace only.
	Empty ValidationKind = iota + 1
	// InvalidArgument is any other bad input, such as an empty username.
	InvalidArgument
)

func (k ValidationKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return fmt.Sprintf("ValidationKind(%d)", uint8(k))
	}
}

// ValidationError is bad input detected before any network call was made.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

// Sentinels for errors.Is. Matching is done on Kind only.
var (
	ErrEmpty           = &ValidationError{Kind: Empty, Message: "message is empty"}
	ErrInvalidArgument = &ValidationError{Kind: InvalidArgument, Message: "invalid argument"}
)

// NewValidationError returns a ValidationError of the given kind.
func NewValidationError(kind ValidationKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError of the same kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// IsTransport reports whether err is or wraps a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsBusiness reports whether err is or wraps a BusinessError.
func IsBusiness(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
