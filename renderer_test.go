package argtree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/napalu/argtree/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpRules() []Rule {
	return []Rule{
		NewFlag("f", "force").Set(WithHelp("Overwrite existing files")),
		NewParameter("r", "repeat").Set(WithType(types.Int), WithDefault(1), WithHelp("Number of repetitions")),
		NewParameter("log-level").Set(WithChoices("debug", "info")),
		NewDictionary("set"),
		NewArgument("name").Set(WithDefault("world")),
		NewArguments("extra-files"),
		NewSubcommand("info", "i").Set(WithHelp("Show information")).Has(
			NewSubcommand("age").Set(WithHelp("Show the age")),
			NewArgument("target").Set(SetRequired(true)),
		),
		NewSubcommand("list"),
		NewPrimaryOption("dump").Has(NewArgument("file")),
	}
}

func TestDefaultRenderer_RuleName(t *testing.T) {
	r := NewRenderer(nil, 0)
	rules := helpRules()

	want := []string{
		"-f, --force",
		"-r, --repeat REPEAT",
		"--log-level LOG_LEVEL",
		"--set KEY VALUE",
		"NAME",
		"EXTRA_FILES...",
		"info, i",
		"list",
		"--dump [FILE]",
	}
	for i, rule := range rules {
		assert.Equal(t, want[i], r.RuleName(rule))
	}
}

func TestDefaultRenderer_RuleDescription(t *testing.T) {
	r := NewRenderer(nil, 0)
	rules := helpRules()

	assert.Equal(t, "Overwrite existing files", r.RuleDescription(rules[0]))
	assert.Equal(t, "Number of repetitions (default: 1)", r.RuleDescription(rules[1]))
	assert.Equal(t, "(choices: debug, info)", r.RuleDescription(rules[2]))
	assert.Equal(t, "", r.RuleDescription(rules[3]))
	assert.Equal(t, "(required)", r.RuleDescription(NewArgument("x").Set(SetRequired(true))))
}

func TestDefaultRenderer_CommandUsage(t *testing.T) {
	r := NewRenderer(nil, 0)

	ctx, err := ParseDry(helpRules(), nil)
	require.NoError(t, err)
	assert.Equal(t, "app [OPTIONS] [NAME] [EXTRA_FILES...] COMMAND", r.CommandUsage("app", ctx))

	ctx, err = ParseDry(helpRules(), []string{"i"})
	require.NoError(t, err)
	assert.Equal(t, "app info TARGET COMMAND", r.CommandUsage("app", ctx))
}

func TestDefaultRenderer_Render(t *testing.T) {
	ctx, err := ParseDry(helpRules(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(nil, 80).Render(&buf, "app", "Greets people", ctx))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Usage: app [OPTIONS]"), out)
	assert.Contains(t, out, "\nGreets people\n")
	assert.Contains(t, out, "\nOptions:\n")
	assert.Contains(t, out, "\nArguments:\n")
	assert.Contains(t, out, "\nCommands:\n")
	assert.Contains(t, out, "  -r, --repeat REPEAT     Number of repetitions (default: 1)\n")
	assert.Contains(t, out, "  info, i   Show information\n")
	assert.Contains(t, out, "    age     Show the age\n", "nested commands are indented below their parent")
	assert.Contains(t, out, "  list\n")

	commands := out[strings.Index(out, "Commands:"):]
	assert.Less(t, strings.Index(commands, "info"), strings.Index(commands, "age"))
	assert.Less(t, strings.Index(commands, "age"), strings.Index(commands, "list"), "the tree is listed depth first")
}

func TestDefaultRenderer_RenderSkipsEmptySections(t *testing.T) {
	ctx, err := ParseDry([]Rule{NewSubcommand("run")}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(nil, 0).Render(&buf, "app", "", ctx))

	assert.Equal(t, "Usage: app COMMAND\n\nCommands:\n  run\n", buf.String())
}

func TestWrap(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"

	assert.Equal(t, []string{"the quick brown fox jumps", "over the lazy dog"}, wrap(text, 25))
	assert.Equal(t, []string{text}, wrap(text, 10), "narrow widths disable wrapping")
	assert.Nil(t, wrap("  ", 40))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "WORD_IDX", Placeholder("word_idx"))
	assert.Equal(t, "NAME", Placeholder("name"))
}
