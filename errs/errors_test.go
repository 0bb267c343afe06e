package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	def := NewDefinitionError(ErrRequiredWithDefault, "--name")
	syn := NewSyntaxError(ErrRequiredMissing, "--name")
	val := NewValueError(ErrParseInt, "abc")

	assert.True(t, IsDefinition(def))
	assert.False(t, IsSyntax(def))
	assert.True(t, IsSyntax(syn))
	assert.False(t, IsDefinition(syn))
	assert.True(t, IsValue(val))

	assert.Equal(t, "--name cannot be required and have a default value at the same time", def.Error())
	assert.Equal(t, "required argument --name is missing", syn.Error())
	assert.Equal(t, `invalid integer "abc"`, val.Error())
	assert.Equal(t, "abc", val.Raw)
}

func TestSyntaxError_WrapsValueError(t *testing.T) {
	val := NewValueError(ErrParseInt, "abc")
	err := fmt.Errorf("parsing: %w", NewSyntaxError(ErrInvalidValue, "--repeat").Wrap(val))

	assert.True(t, IsSyntax(err))
	assert.True(t, IsValue(err))
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.True(t, errors.Is(err, ErrParseInt))
	assert.False(t, errors.Is(err, ErrParseFloat))
	assert.Equal(t, `parsing: invalid value for --repeat: invalid integer "abc"`, err.Error())

	var target *ValueError
	if assert.True(t, errors.As(err, &target)) {
		assert.Equal(t, "abc", target.Raw)
	}
}

func TestDefinitionError_Wrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewDefinitionError(ErrInvalidConfig, "name").Wrap(cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Equal(t, "invalid configuration: name: boom", err.Error())
}
