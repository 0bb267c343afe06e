package types

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/napalu/argtree/errs"
)

// Type converts a raw command-line token into a typed value
type Type interface {
	// Name is used in help text and in union error messages
	Name() string
	// Convert returns the typed value of raw or an *errs.ValueError
	Convert(raw string) (any, error)
}

type builtin struct {
	name    string
	convert func(raw string) (any, error)
}

func (b *builtin) Name() string { return b.name }

func (b *builtin) Convert(raw string) (any, error) { return b.convert(raw) }

type null struct{}

func (null) Name() string { return "none" }

func (null) Convert(raw string) (any, error) {
	return nil, errs.NewValueError(errs.ErrCustomType, raw, "none")
}

var (
	// String passes the raw token through
	String Type = &builtin{name: "string", convert: func(raw string) (any, error) {
		return raw, nil
	}}

	// Int parses base 10 integers into int
	Int Type = &builtin{name: "int", convert: func(raw string) (any, error) {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, errs.NewValueError(errs.ErrParseInt, raw)
		}
		return v, nil
	}}

	// Float parses floating point numbers into float64
	Float Type = &builtin{name: "float", convert: func(raw string) (any, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errs.NewValueError(errs.ErrParseFloat, raw)
		}
		return v, nil
	}}

	// Bool accepts true/false, yes/no, on/off, 1/0, t/f and y/n in any case
	Bool Type = &builtin{name: "bool", convert: func(raw string) (any, error) {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "yes", "on", "1", "t", "y":
			return true, nil
		case "false", "no", "off", "0", "f", "n":
			return false, nil
		}
		return nil, errs.NewValueError(errs.ErrParseBool, raw)
	}}

	// Duration parses time.Duration strings such as 1h30m
	Duration Type = &builtin{name: "duration", convert: func(raw string) (any, error) {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errs.NewValueError(errs.ErrParseDuration, raw).Wrap(err)
		}
		return v, nil
	}}

	// Time parses dates and times in any format dateparse understands, in the local time zone
	Time Type = &builtin{name: "time", convert: func(raw string) (any, error) {
		v, err := dateparse.ParseLocal(raw)
		if err != nil {
			return nil, errs.NewValueError(errs.ErrParseTime, raw).Wrap(err)
		}
		return v, nil
	}}

	// Null matches only an absent value. As a union candidate it never matches a token.
	Null Type = null{}
)

// Func returns a Type backed by a user-supplied parser. Any error returned by fn is reported
// as the cause of a value error.
func Func[T any](name string, fn func(raw string) (T, error)) Type {
	return &builtin{name: name, convert: func(raw string) (any, error) {
		v, err := fn(raw)
		if err != nil {
			return nil, errs.NewValueError(errs.ErrCustomType, raw, name).Wrap(err)
		}
		return v, nil
	}}
}

// Union tries each candidate in order, the first successful conversion wins
type Union struct {
	candidates []Type
}

// OneOf returns a Union of candidates. Nested unions are tried depth-first in declaration order.
func OneOf(candidates ...Type) *Union {
	return &Union{candidates: candidates}
}

// Optional returns a Union of candidates which also accepts an absent value
func Optional(candidates ...Type) *Union {
	return &Union{candidates: append(append([]Type{}, candidates...), Null)}
}

// Name returns the union signature, e.g. int|float|none
func (u *Union) Name() string {
	names := make([]string, 0, len(u.candidates))
	for _, c := range u.candidates {
		names = append(names, c.Name())
	}

	return strings.Join(names, "|")
}

// Convert tries each candidate in order
func (u *Union) Convert(raw string) (any, error) {
	for _, c := range u.candidates {
		if _, isNull := c.(null); isNull {
			continue
		}
		if v, err := c.Convert(raw); err == nil {
			return v, nil
		}
	}

	return nil, errs.NewValueError(errs.ErrUnionMismatch, raw, u.Name())
}

// AcceptsAbsent reports whether t accepts an absent value: t is Null, or a union with Null
// among its candidates at any depth
func AcceptsAbsent(t Type) bool {
	switch v := t.(type) {
	case null:
		return true
	case *Union:
		for _, c := range v.candidates {
			if AcceptsAbsent(c) {
				return true
			}
		}
	}

	return false
}

// Coerce converts raw with t. A nil Type passes raw through unchanged.
func Coerce(t Type, raw string) (any, error) {
	if t == nil {
		return raw, nil
	}

	return t.Convert(raw)
}
