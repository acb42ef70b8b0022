package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so handlers can pick a status code.
type ErrorKind string

const (
	KindInternal      ErrorKind = "internal"
	KindConfiguration ErrorKind = "configuration"
	KindValidation    ErrorKind = "validation"
	KindAuth          ErrorKind = "auth"
	KindUpstream      ErrorKind = "upstream"
	KindOutputParse   ErrorKind = "output_parse"
)

// Error is a classified failure with a caller-facing message.
type Error struct {
	Kind    ErrorKind
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

// Is matches on kind and message so wrapped copies of a sentinel still match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrProviderKeyMissing = &Error{Kind: KindConfiguration, Message: "OpenRouter API key is missing."}
	ErrNoImageUploaded    = &Error{Kind: KindValidation, Message: "No image uploaded"}
	ErrNoImageInput       = &Error{Kind: KindValidation, Message: "Must provide 'image' file or JSON with 'image_base64'"}
	ErrUnauthorized       = &Error{Kind: KindAuth, Message: "Unauthorized. Invalid or missing API key."}
)

// NewValidationError wraps err as a caller input fault.
func NewValidationError(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Message: msg, Err: err}
}

// UpstreamError indicates the vision-model provider answered with a failure.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// OutputParseError indicates the cleaned model output is not a JSON object.
// Raw holds the cleaned text verbatim.
type OutputParseError struct {
	Raw string
	Err error
}

func (e *OutputParseError) Error() string {
	return fmt.Sprintf("LLM returned invalid JSON format: %v", e.Err)
}

func (e *OutputParseError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, or KindInternal if it carries none.
func KindOf(err error) ErrorKind {
	var (
		domainErr   *Error
		upstreamErr *UpstreamError
		parseErr    *OutputParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &parseErr):
		return KindOutputParse
	case errors.As(err, &upstreamErr):
		return KindUpstream
	case errors.As(err, &domainErr):
		return domainErr.Kind
	default:
		return KindInternal
	}
}
