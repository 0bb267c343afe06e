package completion

import (
	"fmt"
	"strings"
)

type FishGenerator struct{}

// Generate renders a fish completion script. Fish replaces the whole token, so the part up to
// '=' is put back in front of value candidates and the space escaping is undone.
func (g *FishGenerator) Generate(programName string, data CompletionData) string {
	var script strings.Builder

	script.WriteString(comment(data.Description))
	script.WriteString(fmt.Sprintf(`function %[1]s
    set -l token (commandline -ct)
    set -l prefix ''
    if string match -q -- '*=*' $token
        set prefix (string replace -r -- '=.*$' '=' $token)
    end
    for candidate in ('%[2]s' %[3]s (commandline -cp) 2>/dev/null)
        echo $prefix(string replace -a -- '\ ' ' ' $candidate)
    end
end

complete -c '%[2]s' -f -a '(%[1]s)'
`, functionName(programName), escapeFish(programName), data.completeFlag()))

	return script.String()
}
