package argtree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/napalu/argtree/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionRules() []Rule {
	return []Rule{
		NewFlag("v", "verbose"),
		NewParameter("color").Set(WithChoices("red", "green", "light blue")),
		NewSubcommand("info", "i").Has(
			NewSubcommand("age"),
			NewSubcommand("address"),
			NewParameter("format").Set(WithChoices("json", "text")),
		),
		NewSubcommand("install").Has(
			NewArgument("package").Set(WithPrefixChoicesFunc(func(current string) []string {
				return []string{current + "-core", current + "-extra"}
			})),
		),
		NewDictionary("set"),
		NewPrimaryOption("version"),
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name    string
		cmdline string
		wordIdx int
		want    []string
	}{
		{
			name:    "empty line",
			cmdline: "app ",
			want:    []string{"info", "i", "install", "-v", "--verbose", "--color", "--color=", "--set", "--version"},
		},
		{
			name:    "program name only",
			cmdline: "app",
			want:    []string{"info", "i", "install", "-v", "--verbose", "--color", "--color=", "--set", "--version"},
		},
		{
			name:    "prefix",
			cmdline: "app in",
			want:    []string{"info", "install"},
		},
		{
			name:    "long options",
			cmdline: "app --",
			want:    []string{"--verbose", "--color", "--color=", "--set", "--version"},
		},
		{
			name:    "child subcommands",
			cmdline: "app info ",
			want:    []string{"age", "address", "--format", "--format="},
		},
		{
			name:    "complete subcommand",
			cmdline: "app info age",
			want:    []string{"age"},
		},
		{
			name:    "partial subcommand",
			cmdline: "app info a",
			want:    []string{"age", "address"},
		},
		{
			name:    "parameter value",
			cmdline: "app --color ",
			want:    []string{"red", "green", `light\ blue`},
		},
		{
			name:    "parameter value prefix",
			cmdline: "app --color g",
			want:    []string{"green"},
		},
		{
			name:    "ancestor parameter value",
			cmdline: "app info --color r",
			want:    []string{"red"},
		},
		{
			name:    "child parameter value",
			cmdline: "app info --format ",
			want:    []string{"json", "text"},
		},
		{
			name:    "equals form",
			cmdline: "app --color=",
			want:    []string{"red", "green", `light\ blue`},
		},
		{
			name:    "equals form with prefix",
			cmdline: "app info --format=j",
			want:    []string{"json"},
		},
		{
			name:    "generated choices",
			cmdline: "app install lib",
			want:    []string{"lib-core", "lib-extra"},
		},
		{
			name:    "flags already used are still offered",
			cmdline: "app -v -",
			want:    []string{"-v", "--verbose", "--color", "--color=", "--set", "--version"},
		},
		{
			name:    "nothing matches",
			cmdline: "app zzz",
			want:    []string{},
		},
		{
			name:    "word index in the middle",
			cmdline: "app inf age",
			wordIdx: 1,
			want:    []string{"info"},
		},
		{
			name:    "middle word after a parameter keyword",
			cmdline: "app --color r info",
			wordIdx: 2,
			want:    []string{"red"},
		},
		{
			name:    "word index out of range",
			cmdline: "app info ag",
			wordIdx: 9,
			want:    []string{"age"},
		},
		{
			name:    "quoted line",
			cmdline: `"app info "`,
			want:    []string{"age", "address", "--format", "--format="},
		},
		{
			name:    "unterminated quote",
			cmdline: `app --color "light`,
			want:    []string{`light\ blue`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Complete(completionRules(), tt.cmdline, tt.wordIdx)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Complete(%q) mismatch (-want +got):\n%s", tt.cmdline, diff)
			}
		})
	}
}

func TestComplete_SubcommandAlias(t *testing.T) {
	got, err := Complete(completionRules(), "app i", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"i"}, got, "an exact alias is final even though longer keywords share its prefix")

	got, err = Complete(completionRules(), "app info", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"info"}, got)

	got, err = Complete(completionRules(), "app i ", 0)
	require.NoError(t, err)
	assert.Contains(t, got, "age", "an alias activates the subcommand like its main keyword")
}

func TestComplete_InvalidPartialInput(t *testing.T) {
	rules := []Rule{
		NewArgument("name").Set(SetRequired(true), WithChoices("alice", "bob"), SetStrictChoices(true)),
		NewArguments("pair").Set(WithCount(2)),
	}

	for _, line := range []string{"app zed ", "app --unknown ", "app a b c d e ", "app 'unbalanced"} {
		_, err := Complete(rules, line, 0)
		assert.NoError(t, err, line)
	}

	got, err := Complete(rules, "app b", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, got)
}

func TestComplete_DefinitionError(t *testing.T) {
	_, err := Complete([]Rule{NewArguments("a"), NewArguments("b")}, "app ", 0)

	assert.True(t, errs.IsDefinition(err))
}

func TestFinishCandidates(t *testing.T) {
	got := finishCandidates([]string{"--color=red", "--color=red", "--color=green", "--other=x"}, "--color=")
	assert.Equal(t, []string{"red", "green"}, got)

	got = finishCandidates([]string{"--color", "--color=", "--count"}, "--co")
	assert.Equal(t, []string{"--color", "--color=", "--count"}, got, "nothing collapses before the '=' is typed")

	got = finishCandidates([]string{"my file.txt"}, "")
	assert.Equal(t, []string{`my\ file.txt`}, got)
	assert.True(t, strings.HasPrefix(got[0], "my"))
}
