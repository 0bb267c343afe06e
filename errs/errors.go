package errs

import (
	"errors"

	"github.com/napalu/argtree/i18n"
)

// Definition errors
var (
	ErrRequiredWithDefault      = i18n.NewError(ErrRequiredWithDefaultKey)
	ErrMultipleUnbounded        = i18n.NewError(ErrMultipleUnboundedKey)
	ErrPositionalAfterUnbounded = i18n.NewError(ErrPositionalAfterUnboundedKey)
	ErrUnsupportedConfig        = i18n.NewError(ErrUnsupportedConfigKey)
	ErrRuleFrozen               = i18n.NewError(ErrRuleFrozenKey)
	ErrNilRule                  = i18n.NewError(ErrNilRuleKey)
	ErrNoKeywords               = i18n.NewError(ErrNoKeywordsKey)
	ErrInvalidCount             = i18n.NewError(ErrInvalidCountKey)
	ErrActionNotFunc            = i18n.NewError(ErrActionNotFuncKey)
	ErrActionArity              = i18n.NewError(ErrActionArityKey)
	ErrActionReturn             = i18n.NewError(ErrActionReturnKey)
	ErrInvalidConfig            = i18n.NewError(ErrInvalidConfigKey)
	ErrActionParamConvert       = i18n.NewError(ErrActionParamConvertKey)
	ErrDecodeTarget             = i18n.NewError(ErrDecodeTargetKey)
)

// Syntax errors
var (
	ErrMissingParamValue  = i18n.NewError(ErrMissingParamValueKey)
	ErrMissingDictKey     = i18n.NewError(ErrMissingDictKeyKey)
	ErrMissingDictValue   = i18n.NewError(ErrMissingDictValueKey)
	ErrNotEnoughArguments = i18n.NewError(ErrNotEnoughArgumentsKey)
	ErrCountMismatch      = i18n.NewError(ErrCountMismatchKey)
	ErrRequiredMissing    = i18n.NewError(ErrRequiredMissingKey)
	ErrInvalidChoice      = i18n.NewError(ErrInvalidChoiceKey)
	ErrInvalidValue       = i18n.NewError(ErrInvalidValueKey)
	ErrUnrecognizedArgs   = i18n.NewError(ErrUnrecognizedArgsKey)
)

// App errors
var (
	ErrUnsupportedShell  = i18n.NewError(ErrUnsupportedShellKey)
	ErrCompletionInstall = i18n.NewError(ErrCompletionInstallKey)
)

// Value errors
var (
	ErrParseInt      = i18n.NewError(ErrParseIntKey)
	ErrParseFloat    = i18n.NewError(ErrParseFloatKey)
	ErrParseBool     = i18n.NewError(ErrParseBoolKey)
	ErrParseDuration = i18n.NewError(ErrParseDurationKey)
	ErrParseTime     = i18n.NewError(ErrParseTimeKey)
	ErrUnionMismatch = i18n.NewError(ErrUnionMismatchKey)
	ErrCustomType    = i18n.NewError(ErrCustomTypeKey)
	ErrConversion    = i18n.NewError(ErrConversionKey)
)

// DefinitionError reports a structural contradiction in a rule tree. It is a programming
// mistake of the CLI author and is never swallowed, not even by dry runs.
type DefinitionError struct {
	Err i18n.TranslatableError
}

// NewDefinitionError returns a DefinitionError built from one of the definition sentinels
func NewDefinitionError(sentinel i18n.TranslatableError, args ...any) *DefinitionError {
	return &DefinitionError{Err: withArgs(sentinel, args)}
}

func (e *DefinitionError) Error() string { return e.Err.Error() }

func (e *DefinitionError) Unwrap() error { return e.Err }

// Wrap returns a copy of e carrying cause
func (e *DefinitionError) Wrap(cause error) *DefinitionError {
	return &DefinitionError{Err: e.Err.Wrap(cause)}
}

// SyntaxError reports a problem with the supplied command-line arguments
type SyntaxError struct {
	Err i18n.TranslatableError
}

// NewSyntaxError returns a SyntaxError built from one of the syntax sentinels
func NewSyntaxError(sentinel i18n.TranslatableError, args ...any) *SyntaxError {
	return &SyntaxError{Err: withArgs(sentinel, args)}
}

func (e *SyntaxError) Error() string { return e.Err.Error() }

func (e *SyntaxError) Unwrap() error { return e.Err }

// Wrap returns a copy of e carrying cause
func (e *SyntaxError) Wrap(cause error) *SyntaxError {
	return &SyntaxError{Err: e.Err.Wrap(cause)}
}

// ValueError reports a raw token that could not be coerced to its declared type. The parser
// reports it as the cause of a SyntaxError.
type ValueError struct {
	Err i18n.TranslatableError
	Raw string
}

// NewValueError returns a ValueError for raw built from one of the value sentinels. raw is
// always the first format argument.
func NewValueError(sentinel i18n.TranslatableError, raw string, args ...any) *ValueError {
	return &ValueError{Err: withArgs(sentinel, append([]any{raw}, args...)), Raw: raw}
}

func (e *ValueError) Error() string { return e.Err.Error() }

func (e *ValueError) Unwrap() error { return e.Err }

// Wrap returns a copy of e carrying cause
func (e *ValueError) Wrap(cause error) *ValueError {
	return &ValueError{Err: e.Err.Wrap(cause), Raw: e.Raw}
}

// IsDefinition reports whether err is or wraps a DefinitionError
func IsDefinition(err error) bool {
	var target *DefinitionError
	return errors.As(err, &target)
}

// IsSyntax reports whether err is or wraps a SyntaxError
func IsSyntax(err error) bool {
	var target *SyntaxError
	return errors.As(err, &target)
}

// IsValue reports whether err is or wraps a ValueError
func IsValue(err error) bool {
	var target *ValueError
	return errors.As(err, &target)
}

func withArgs(sentinel i18n.TranslatableError, args []any) i18n.TranslatableError {
	if len(args) == 0 {
		return sentinel
	}

	return sentinel.WithArgs(args...)
}
