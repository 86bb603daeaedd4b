package asn1

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error kinds. Errors returned by codecs wrap exactly one of them,
// which makes them usable with errors.Is.
var (
	// ErrCustom is the kind of errors raised through CustomEncodeError and CustomDecodeError,
	// typically constraint violations.
	ErrCustom = errors.New("custom error")

	// ErrTypeMismatch is returned when the input does not contain the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrSpecViolation is returned when the input violates a rule of the encoding rules.
	ErrSpecViolation = errors.New("specification violation")

	// ErrEndOfInput is returned when the input ends before the value is complete.
	ErrEndOfInput = errors.New("unexpected end of input")

	// ErrSyntax is returned when the underlying tokenizer rejects the input.
	ErrSyntax = errors.New("malformed input")

	// ErrMissingFieldName is returned when a constructed type encodes
	// more fields than its descriptor declares.
	ErrMissingFieldName = errors.New("missing field name")

	// ErrFieldCount is returned when a constructed type leaves
	// some of its declared fields unvisited.
	ErrFieldCount = errors.New("field count mismatch")

	// ErrMissingField is returned when a required field is absent from the input.
	ErrMissingField = errors.New("missing required field")

	// ErrTrailingData is returned when bytes remain after a complete value.
	ErrTrailingData = errors.New("trailing data")

	// ErrInvalidValue is returned when a value cannot be represented by the codec.
	ErrInvalidValue = errors.New("invalid value")
)

// EncodeError is returned by encoders.
type EncodeError struct {
	Codec Codec
	Kind  error
	Msg   string
}

func (e *EncodeError) Error() string {
	return formatError(e.Codec, e.Kind, e.Msg, "", "")
}

// Unwrap returns the kind of the error.
func (e *EncodeError) Unwrap() error {
	return e.Kind
}

// DecodeError is returned by decoders.
type DecodeError struct {
	Codec  Codec
	Kind   error
	Msg    string
	Needed string
	Found  string
}

func (e *DecodeError) Error() string {
	return formatError(e.Codec, e.Kind, e.Msg, e.Needed, e.Found)
}

// Unwrap returns the kind of the error.
func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func formatError(c Codec, kind error, msg, needed, found string) string {
	var sb strings.Builder
	sb.WriteString(c.String())
	sb.WriteString(": ")
	if kind != nil {
		sb.WriteString(kind.Error())
	}
	if needed != "" || found != "" {
		fmt.Fprintf(&sb, ": needed %s, found %s", needed, found)
	}
	if msg != "" {
		sb.WriteString(": ")
		sb.WriteString(msg)
	}
	return sb.String()
}

// NewEncodeError returns an EncodeError of the given kind.
func NewEncodeError(codec Codec, kind error, format string, args ...any) error {
	return errors.WithStack(&EncodeError{
		Codec: codec,
		Kind:  kind,
		Msg:   fmt.Sprintf(format, args...),
	})
}

// NewDecodeError returns a DecodeError of the given kind.
func NewDecodeError(codec Codec, kind error, format string, args ...any) error {
	return errors.WithStack(&DecodeError{
		Codec: codec,
		Kind:  kind,
		Msg:   fmt.Sprintf(format, args...),
	})
}

// CustomEncodeError creates an encoding error out of a message and
// the codec that was in use.
func CustomEncodeError(msg string, codec Codec) error {
	return errors.WithStack(&EncodeError{Codec: codec, Kind: ErrCustom, Msg: msg})
}

// CustomDecodeError creates a decoding error out of a message and
// the codec that was in use.
func CustomDecodeError(msg string, codec Codec) error {
	return errors.WithStack(&DecodeError{Codec: codec, Kind: ErrCustom, Msg: msg})
}

// TypeMismatchError reports that the decoder needed something and found something else.
func TypeMismatchError(codec Codec, needed, found string) error {
	return errors.WithStack(&DecodeError{
		Codec:  codec,
		Kind:   ErrTypeMismatch,
		Needed: needed,
		Found:  found,
	})
}

// EndOfInputError reports a truncated input.
func EndOfInputError(codec Codec) error {
	return errors.WithStack(&DecodeError{Codec: codec, Kind: ErrEndOfInput})
}

// IsTypeMismatch returns true if err is caused by a type mismatch.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsEndOfInput returns true if err is caused by a truncated input.
func IsEndOfInput(err error) bool {
	return errors.Is(err, ErrEndOfInput)
}
