package argtree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/parse"
	"github.com/napalu/argtree/types"
	"github.com/napalu/argtree/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fuzzRules() []Rule {
	return []Rule{
		NewFlag("v", "verbose").Set(SetMultiple(true)),
		NewFlag("x", "xtra"),
		NewParameter("f", "file"),
		NewParameter("n", "count").Set(WithType(types.Int)),
		NewParameter("漢字"),
		NewDictionary("set"),
		NewSubcommand("info", "i").Has(
			NewParameter("format").Set(WithChoices("json", "text"), SetStrictChoices(true)),
			NewArgument("target").Set(SetRequired(true)),
		),
		NewPrimaryOption("dump").Has(NewArguments("files").Set(WithMinCount(1))),
		NewArgument("first"),
		NewArguments("rest").Set(WithMaxCount(3), WithJoin(",")),
	}
}

func FuzzParseDry(f *testing.F) {
	f.Add("-a2こんにちは")
	f.Add("--file")
	f.Add("-vxffile")
	f.Add("-- value")
	f.Add("   --count=abc   ")
	f.Add("-漢字=こんにちは こんにち")
	f.Add("info --format xml")
	f.Add("--set k")
	f.Add("--dump")
	f.Add("a b c d e f")
	f.Add("-")
	f.Add("-v \\'-xtra\\'")

	f.Fuzz(func(t *testing.T, rawArgs string) {
		args, err := parse.Split(rawArgs)
		if err != nil {
			return
		}

		ctx, err := ParseDry(fuzzRules(), args)
		require.NoError(t, err, "dry runs only fail on definition errors")
		require.NotNil(t, ctx)

		// The help of whatever level the arguments resolve to stays renderable
		var b bytes.Buffer
		require.NoError(t, NewRenderer(nil, 0).Render(&b, "app", "", ctx))
		assert.NotContains(t, b.String(), "%!")
	})
}

func FuzzParse(f *testing.F) {
	f.Add("--count 3 info --format json target")
	f.Add("info --format=xml")
	f.Add("--set k v --set")
	f.Add("-vvv a b c d e")
	f.Add("--dump a b")

	f.Fuzz(func(t *testing.T, rawArgs string) {
		args, err := parse.Split(rawArgs)
		if err != nil {
			return
		}

		ctx, err := Parse(fuzzRules(), args, WithParserLogger(util.NopLogger()))
		if err != nil {
			assert.True(t, errs.IsSyntax(err), "unexpected error kind: %v", err)
			assert.NotContains(t, err.Error(), "%!")
			return
		}
		assert.False(t, ctx.Dry())
	})
}

func FuzzComplete(f *testing.F) {
	f.Add("app ", 0)
	f.Add("app info --format ", 0)
	f.Add("app --file=", 0)
	f.Add(`app "unbalanced`, 1)
	f.Add("app i", -3)

	f.Fuzz(func(t *testing.T, cmdline string, wordIdx int) {
		got, err := Complete(fuzzRules(), cmdline, wordIdx)
		require.NoError(t, err)
		require.NotNil(t, got)

		for _, c := range got {
			assert.False(t, strings.Contains(strings.ReplaceAll(c, `\ `, ""), " "), "unescaped space in %q", c)
		}
	})
}
