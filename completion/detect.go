package completion

import (
	"path/filepath"
	"strings"
)

// DefaultShell is assumed when the running shell cannot be detected
const DefaultShell = "bash"

// DetectShell guesses the user's shell from the environment read through getenv. The version
// variables a running shell exports take precedence over the login shell in $SHELL. Unsupported
// or unknown shells yield DefaultShell.
func DetectShell(getenv func(string) string) string {
	switch {
	case getenv("FISH_VERSION") != "":
		return "fish"
	case getenv("ZSH_VERSION") != "":
		return "zsh"
	case getenv("BASH_VERSION") != "":
		return "bash"
	}

	if login := getenv("SHELL"); login != "" {
		name := strings.ToLower(filepath.Base(login))
		if GetGenerator(name) != nil {
			return name
		}
	}

	return DefaultShell
}
