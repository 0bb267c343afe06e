package types

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/napalu/argtree/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce_Builtins(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		raw     string
		want    any
		wantErr error
	}{
		{name: "no type", typ: nil, raw: "as is", want: "as is"},
		{name: "string", typ: String, raw: "x", want: "x"},
		{name: "int", typ: Int, raw: "42", want: 42},
		{name: "negative int", typ: Int, raw: "-7", want: -7},
		{name: "bad int", typ: Int, raw: "4x", wantErr: errs.ErrParseInt},
		{name: "float", typ: Float, raw: "1.5", want: 1.5},
		{name: "float from int", typ: Float, raw: "2", want: 2.0},
		{name: "bad float", typ: Float, raw: "one", wantErr: errs.ErrParseFloat},
		{name: "duration", typ: Duration, raw: "1m30s", want: 90 * time.Second},
		{name: "bad duration", typ: Duration, raw: "soon", wantErr: errs.ErrParseDuration},
		{name: "bad time", typ: Time, raw: "not a date", wantErr: errs.ErrParseTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.typ, tt.raw)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.True(t, errs.IsValue(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Bool(t *testing.T) {
	for _, raw := range []string{"true", "TRUE", "yes", "On", "1", "t", "Y"} {
		v, err := Coerce(Bool, raw)
		require.NoError(t, err, raw)
		assert.Equal(t, true, v, raw)
	}
	for _, raw := range []string{"false", "No", "off", "0", "F", "n"} {
		v, err := Coerce(Bool, raw)
		require.NoError(t, err, raw)
		assert.Equal(t, false, v, raw)
	}
	for _, raw := range []string{"", "maybe", "2", "yess"} {
		_, err := Coerce(Bool, raw)
		assert.True(t, errors.Is(err, errs.ErrParseBool), raw)
	}
}

func TestCoerce_Time(t *testing.T) {
	v, err := Coerce(Time, "2024-03-01")
	require.NoError(t, err)

	ts, ok := v.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.March, ts.Month())
	assert.Equal(t, 1, ts.Day())
}

func TestCoerce_Union(t *testing.T) {
	num := Optional(OneOf(Int, Float))

	assert.Equal(t, "int|float|none", num.Name())
	assert.True(t, AcceptsAbsent(num))
	assert.False(t, AcceptsAbsent(OneOf(Int, Float)))
	assert.False(t, AcceptsAbsent(nil))

	v, err := Coerce(num, "5")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = Coerce(num, "1.0")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = Coerce(num, "hot")
	assert.True(t, errors.Is(err, errs.ErrUnionMismatch))
	assert.Equal(t, `"hot" does not match any of int|float|none`, err.Error())

	_, err = Coerce(num, "none")
	assert.Error(t, err, "a null candidate never matches a token")
}

func TestCoerce_UnionOrder(t *testing.T) {
	v, err := Coerce(OneOf(String, Int), "5")
	require.NoError(t, err)
	assert.Equal(t, "5", v, "the first matching candidate wins")
}

func TestFunc(t *testing.T) {
	cause := errors.New("odd number")
	even := Func("even", func(raw string) (int, error) {
		var n int
		if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
			return 0, err
		}
		if n%2 != 0 {
			return 0, cause
		}
		return n, nil
	})

	assert.Equal(t, "even", even.Name())

	v, err := Coerce(even, "4")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = Coerce(even, "3")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, errs.ErrCustomType))
	assert.Equal(t, `"3" is not a valid even: odd number`, err.Error())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "subcommand", KindSubcommand.String())
	assert.Equal(t, "arguments", KindManyArguments.String())
	assert.Equal(t, "unknown", Kind(99).String())

	assert.True(t, KindPrimaryOption.HasChildren())
	assert.False(t, KindFlag.HasChildren())
	assert.True(t, KindDictionary.Keyworded())
	assert.False(t, KindArgument.Keyworded())
	assert.True(t, KindManyArguments.HasValue())
	assert.False(t, KindDefaultAction.HasValue())
}
