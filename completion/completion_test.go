package completion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerators(t *testing.T) {
	tests := []struct {
		shell    string
		contains []string
	}{
		{
			shell: "bash",
			contains: []string{
				"#!/bin/bash",
				"# My tool\n",
				"__my_tool_complete() {",
				`local line="${COMP_LINE:0:$COMP_POINT}"`,
				`COMPREPLY=( $('my-tool' --autocomplete "$line" 2>/dev/null) )`,
				"complete -o default -F __my_tool_complete 'my-tool'",
			},
		},
		{
			shell: "zsh",
			contains: []string{
				"#compdef my-tool",
				"__my_tool_complete() {",
				`local line="${(j: :)words[1,CURRENT]}"`,
				`'my-tool' --autocomplete "$line"`,
				"compset -P '*='",
				"compdef __my_tool_complete 'my-tool'",
			},
		},
		{
			shell: "fish",
			contains: []string{
				"function __my_tool_complete",
				"('my-tool' --autocomplete (commandline -cp) 2>/dev/null)",
				"complete -c 'my-tool' -f -a '(__my_tool_complete)'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			g := GetGenerator(tt.shell)
			if !assert.NotNil(t, g) {
				return
			}
			script := g.Generate("my-tool", CompletionData{Description: "My tool"})
			for _, want := range tt.contains {
				assert.Contains(t, script, want)
			}
		})
	}
}

func TestGenerators_CustomFlag(t *testing.T) {
	for _, shell := range SupportedShells() {
		script := GetGenerator(shell).Generate("app", CompletionData{CompleteFlag: "--complete"})
		assert.Contains(t, script, "'app' --complete ", shell)
		assert.NotContains(t, script, "--autocomplete", shell)
	}
}

func TestSupportedShells(t *testing.T) {
	assert.Equal(t, []string{"bash", "fish", "zsh"}, SupportedShells())
	assert.Nil(t, GetGenerator("powershell"))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "__app_v2_complete", functionName("app.v2"))
	assert.Equal(t, "# one\n# two\n", comment("one\ntwo\n"))
	assert.Equal(t, "", comment(""))
	assert.Equal(t, `it'\''s`, escapeSingleQuoted("it's"))
	assert.Equal(t, `it\'s`, escapeFish("it's"))
	assert.False(t, strings.Contains(escapeSingleQuoted("plain"), `\`))
}
