package completion

import "sort"

// Generator renders the completion script of one shell
type Generator interface {
	Generate(programName string, data CompletionData) string
}

var generators = map[string]Generator{
	"bash": &BashGenerator{},
	"zsh":  &ZshGenerator{},
	"fish": &FishGenerator{},
}

// GetGenerator returns the Generator for shell or nil when the shell is not supported
func GetGenerator(shell string) Generator {
	return generators[shell]
}

// SupportedShells returns the names of the shells a script can be generated for
func SupportedShells() []string {
	shells := make([]string, 0, len(generators))
	for shell := range generators {
		shells = append(shells, shell)
	}
	sort.Strings(shells)

	return shells
}
