package i18n

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// TranslatableError represents an error whose message is looked up by key
type TranslatableError interface {
	error
	Key() string
	Args() []any
	Unwrap() error
	WithArgs(args ...any) TranslatableError
	Wrap(err error) TranslatableError
	Translate(lang language.Tag) string
}

// TrError is a translatable error with optional format arguments and a wrapped cause.
// Copies made with WithArgs or Wrap share the sentinel of the error they were derived from,
// so errors.Is matches them against the package level error values.
//
//	err := NewError("argtree.error.syntax.required_missing")
//	err = err.WithArgs("--name").Wrap(cause)
type TrError struct {
	sentinel error
	key      string
	args     []any
	wrapped  error
	bundle   *Bundle
}

// NewError creates a new translatable error bound to the default bundle
func NewError(key string) *TrError {
	return NewErrorWithBundle(Default(), key)
}

// NewErrorWithBundle creates a new translatable error bound to b
func NewErrorWithBundle(b *Bundle, key string) *TrError {
	return &TrError{
		sentinel: errors.New(key),
		key:      key,
		bundle:   b,
	}
}

// Error returns the message in the bundle's default language
func (e *TrError) Error() string {
	return e.Translate(e.bundle.DefaultLanguage())
}

// Translate renders the message in lang, falling back to the default language
func (e *TrError) Translate(lang language.Tag) string {
	var msg string
	if len(e.args) > 0 {
		msg = e.bundle.TL(lang, e.key, e.args...)
	} else {
		msg = e.bundle.TL(lang, e.key)
	}

	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}

	return msg
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...any) TranslatableError {
	c := *e
	c.args = args

	return &c
}

// Wrap returns a copy of the error wrapping err
func (e *TrError) Wrap(err error) TranslatableError {
	c := *e
	c.wrapped = err

	return &c
}

// Is reports whether target is this error's sentinel or an error derived from the same sentinel
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}

	return target == e.sentinel
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []any {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}
