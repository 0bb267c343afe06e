package completion

import (
	"regexp"
	"strings"
)

var nonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]`)

// functionName turns a program name into a valid shell function name
func functionName(programName string) string {
	return "__" + nonIdentifier.ReplaceAllString(programName, "_") + "_complete"
}

// comment renders desc as shell comment lines
func comment(desc string) string {
	if desc == "" {
		return ""
	}

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(desc, "\n"), "\n") {
		b.WriteString("# " + line + "\n")
	}

	return b.String()
}

func escapeSingleQuoted(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

func escapeFish(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
