package completion

import (
	"fmt"
	"strings"
)

type ZshGenerator struct{}

// Generate renders a zsh completion function. Candidates for --param=value only carry the value,
// so the part of the word up to '=' is moved to the ignored prefix first.
func (g *ZshGenerator) Generate(programName string, data CompletionData) string {
	var script strings.Builder

	script.WriteString(fmt.Sprintf("#compdef %s\n", programName))
	script.WriteString(comment(data.Description))
	script.WriteString(fmt.Sprintf(`
%[1]s() {
    local line="${(j: :)words[1,CURRENT]}"
    local -a candidates
    candidates=(${(f)"$('%[2]s' %[3]s "$line" 2>/dev/null)"})
    if [[ $PREFIX == *=* ]]; then
        compset -P '*='
    fi
    compadd -Q -a candidates
}

compdef %[1]s '%[2]s'
`, functionName(programName), escapeSingleQuoted(programName), data.completeFlag()))

	return script.String()
}
