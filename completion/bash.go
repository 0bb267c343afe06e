package completion

import (
	"fmt"
	"strings"
)

type BashGenerator struct{}

// Generate renders a bash script which hands the command line up to the cursor to the program
// and offers the lines it prints. '=' is part of COMP_WORDBREAKS, so a candidate for
// --param=value only carries the value.
func (g *BashGenerator) Generate(programName string, data CompletionData) string {
	var script strings.Builder

	script.WriteString("#!/bin/bash\n")
	script.WriteString(comment(data.Description))
	script.WriteString(fmt.Sprintf(`
%[1]s() {
    local IFS=$'\n'
    local line="${COMP_LINE:0:$COMP_POINT}"
    COMPREPLY=( $('%[2]s' %[3]s "$line" 2>/dev/null) )
}

complete -o default -F %[1]s '%[2]s'
`, functionName(programName), escapeSingleQuoted(programName), data.completeFlag()))

	return script.String()
}
