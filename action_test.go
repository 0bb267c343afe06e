package argtree

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/types"
	"github.com/napalu/argtree/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_Validation(t *testing.T) {
	tests := []struct {
		name   string
		action *Action
		want   error
	}{
		{name: "not a function", action: Call(42), want: errs.ErrActionNotFunc},
		{name: "nil", action: Call(nil), want: errs.ErrActionNotFunc},
		{name: "nil function", action: Call((func())(nil)), want: errs.ErrActionNotFunc},
		{name: "too few names", action: Call(func(a, b string) {}, "a"), want: errs.ErrActionArity},
		{name: "too many names", action: Call(func() {}, "a"), want: errs.ErrActionArity},
		{name: "variadic", action: Call(func(a ...string) {}, "a"), want: errs.ErrActionArity},
		{name: "non error return", action: Call(func() int { return 0 }), want: errs.ErrActionReturn},
		{name: "two returns", action: Call(func() (int, error) { return 0, nil }), want: errs.ErrActionReturn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.action.Err(), tt.want), "got %v", tt.action.Err())
			assert.True(t, errs.IsDefinition(tt.action.Err()))
		})
	}

	assert.NoError(t, Call(func() {}).Err())
	assert.NoError(t, Call(func(string, int) error { return nil }, "a", "b").Err())
	assert.NoError(t, Run(func(Args) error { return nil }).Err())
	assert.Equal(t, []string{"a", "b"}, Call(func(string, int) {}, "a", "b").Params())
}

func TestAction_InvokeBindsByName(t *testing.T) {
	var (
		gotName   string
		gotRepeat int64
		gotTags   []string
		gotForce  bool
	)
	rules := []Rule{
		NewFlag("force"),
		NewParameter("repeat").Set(WithType(types.Int)),
		NewParameter("tag").Set(SetMultiple(true)),
		NewArgument("name"),
		NewDefaultAction(Call(func(tags []string, name string, force bool, repeat int64) {
			gotTags, gotName, gotForce, gotRepeat = tags, name, force, repeat
		}, "tag", "name", "force", "repeat")),
	}

	ctx := mustParse(t, rules, []string{"--tag", "a", "--repeat", "3", "bob", "--tag", "b", "--force"})
	require.NoError(t, ctx.Invoke())

	assert.Equal(t, "bob", gotName)
	assert.Equal(t, int64(3), gotRepeat)
	assert.Equal(t, []string{"a", "b"}, gotTags)
	assert.True(t, gotForce)
	assert.Empty(t, ctx.Warnings)
}

func TestAction_InvokeArgsContainer(t *testing.T) {
	var got Args
	rules := []Rule{
		NewFlag("dry-run"),
		NewDefaultAction(Run(func(args Args) error {
			got = args
			return nil
		})),
	}

	ctx := mustParse(t, rules, []string{"--dry-run"})
	require.NoError(t, ctx.Invoke())

	assert.True(t, got.Bool("--dry-run"))
	assert.True(t, got.Bool("dry_run"))
}

func TestAction_InvokeArgsByType(t *testing.T) {
	var got Args
	rules := []Rule{
		NewArgument("args"),
		NewDefaultAction(Call(func(all Args, first string) {
			got = all
		}, "everything", "args")),
	}

	ctx := mustParse(t, rules, []string{"x"})
	require.NoError(t, ctx.Invoke())

	assert.Equal(t, "x", got.String("args"), "a variable named args wins over the container for non Args parameters")
}

func TestAction_InvokeUnresolved(t *testing.T) {
	var buf bytes.Buffer
	var got *int
	called := false
	rules := []Rule{
		NewDefaultAction(Call(func(missing *int) {
			called = true
			got = missing
		}, "missing")),
	}

	ctx, err := Parse(rules, nil, WithParserLogger(slog.New(slog.NewJSONHandler(&buf, nil))))
	require.NoError(t, err)
	require.NoError(t, ctx.Invoke())

	assert.True(t, called, "unresolvable names never abort the invocation")
	assert.Nil(t, got)
	require.Len(t, ctx.Warnings, 1)
	assert.Contains(t, ctx.Warnings[0], "missing")
	assert.Contains(t, buf.String(), `"parameter":"missing"`)
}

func TestAction_InvokeConversionError(t *testing.T) {
	rules := []Rule{
		NewParameter("name"),
		NewDefaultAction(Call(func(n int) {}, "name")),
	}

	ctx := mustParse(t, rules, []string{"--name", "bob"})
	err := ctx.Invoke()

	assert.True(t, errors.Is(err, errs.ErrActionParamConvert), "got %v", err)
	assert.True(t, errors.Is(err, errs.ErrConversion), "got %v", err)
}

func TestAction_InvokeReturnsError(t *testing.T) {
	boom := errors.New("boom")
	rules := []Rule{NewDefaultAction(Call(func() error { return boom }))}

	ctx := mustParse(t, rules, nil)
	assert.Same(t, boom, ctx.Invoke())
}

func TestRunContext_InvokeWithoutAction(t *testing.T) {
	ctx := mustParse(t, []Rule{NewFlag("x")}, nil)

	assert.Nil(t, ctx.Action)
	assert.NoError(t, ctx.Invoke())
}

func TestAction_InvokeDefinitionError(t *testing.T) {
	a := Call(func(a string) {})
	err := a.invoke(Args{}, func(string) {})

	assert.True(t, errors.Is(err, errs.ErrActionArity))
}

func TestAction_InvokeLogsWithParserLogger(t *testing.T) {
	rules := []Rule{NewDefaultAction(Call(func(x string) {}, "x"))}
	p, err := NewParser(rules, WithParserLogger(util.NopLogger()))
	require.NoError(t, err)

	ctx, err := p.Parse(nil)
	require.NoError(t, err)
	require.NoError(t, ctx.Invoke())
	assert.Len(t, ctx.Warnings, 1)
}
