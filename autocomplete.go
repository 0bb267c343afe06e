package argtree

import (
	"fmt"
	"strings"

	"github.com/napalu/argtree/parse"
)

// Complete returns the completion candidates for a partially typed command line. cmdline
// includes the program name, wordIdx is the index of the word being completed counting the
// program name as word 0; a wordIdx outside the words typed so far selects the last word.
//
// Every word but the one being completed is parsed in dry-run mode to find the active level,
// then candidates are taken from the first source that applies:
//
//  1. the word is a complete subcommand keyword: the word itself
//  2. the previous word is a parameter keyword: the choices of that parameter
//  3. the word has the form keyword=value: the choices of the parameter, as keyword=choice
//  4. otherwise the keywords of the active rules and the choices of their positional arguments
//
// Candidates not starting with the word are dropped. Only definition errors are returned.
//
// Words after the one being completed take part in the dry parse. When the previous word is a
// parameter keyword the parameter consumes the following word as its value, so the active level
// reflects the line with the current word removed rather than the line up to the cursor.
func Complete(rules []Rule, cmdline string, wordIdx int) ([]string, error) {
	return complete(func(args []string) (*RunContext, error) {
		return ParseDry(rules, args)
	}, cmdline, wordIdx)
}

func complete(parseDry func(args []string) (*RunContext, error), cmdline string, wordIdx int) ([]string, error) {
	words := parse.Words(cmdline)
	if len(words) == 0 {
		words = []string{""}
	}

	idx := wordIdx - 1
	if wordIdx <= 0 || idx >= len(words) {
		idx = len(words) - 1
	}
	current := words[idx]

	others := append(append([]string{}, words[:idx]...), words[idx+1:]...)
	ctx, err := parseDry(others)
	if err != nil {
		return nil, err
	}

	previous := ""
	if idx > 0 {
		previous = words[idx-1]
	}

	return finishCandidates(candidates(ctx, previous, current), current), nil
}

func candidates(ctx *RunContext, previous, current string) []string {
	if isCompleteSubcommand(ctx, current) {
		return []string{current}
	}

	if param := findActiveParameter(ctx, previous); param != nil {
		return choiceStrings(param, current, "")
	}

	if kw, value, found := strings.Cut(current, "="); found {
		if param := findActiveParameter(ctx, kw); param != nil {
			return choiceStrings(param, value, kw+"=")
		}
	}

	var found []string
	for _, r := range ctx.ActiveRules {
		if s, ok := r.(*SubcommandRule); ok {
			found = append(found, s.Keywords()...)
		}
	}
	for _, r := range ctx.ActiveRules {
		if f, ok := r.(*FlagRule); ok {
			found = append(found, f.Keywords()...)
		}
	}
	for _, r := range ctx.ActiveRules {
		if p, ok := r.(*ParameterRule); ok {
			for _, kw := range p.Keywords() {
				found = append(found, kw, kw+"=")
			}
		}
	}
	for _, r := range ctx.ActiveRules {
		if d, ok := r.(*DictionaryRule); ok {
			found = append(found, d.Keywords()...)
		}
	}
	for _, r := range ctx.ActiveRules {
		if o, ok := r.(*PrimaryOptionRule); ok {
			found = append(found, o.Keywords()...)
		}
	}
	for _, r := range ctx.ActiveRules {
		switch v := r.(type) {
		case *ArgumentRule, *ManyArgumentsRule:
			found = append(found, choiceStrings(v.(ValueRule), current, "")...)
		}
	}

	return found
}

// isCompleteSubcommand reports whether current already names a subcommand of the active level
// or the innermost active subcommand itself
func isCompleteSubcommand(ctx *RunContext, current string) bool {
	if current == "" {
		return false
	}
	for _, r := range ctx.ActiveRules {
		if s, ok := r.(*SubcommandRule); ok && s.matches(current) {
			return true
		}
	}
	if n := len(ctx.ActiveSubcommands); n > 0 {
		if s, ok := ctx.ActiveSubcommands[n-1].(*SubcommandRule); ok && s.matches(current) {
			return true
		}
	}

	return false
}

// findActiveParameter looks for a parameter triggered by token, from the deepest active level up
func findActiveParameter(ctx *RunContext, token string) *ParameterRule {
	if token == "" {
		return nil
	}
	for i := len(ctx.levels) - 1; i >= 0; i-- {
		for _, r := range ctx.levels[i] {
			if p, ok := r.(*ParameterRule); ok && p.matches(token) {
				return p
			}
		}
	}

	return nil
}

func choiceStrings(rule ValueRule, current, prefix string) []string {
	if !rule.HasChoices() {
		return nil
	}

	choices := rule.Choices(current)
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = prefix + fmt.Sprint(c)
	}

	return out
}

// finishCandidates keeps the candidates starting with current, drops duplicates, reduces
// keyword=value candidates to their value when current already holds the '=' and escapes spaces
func finishCandidates(found []string, current string) []string {
	collapse := strings.Contains(current, "=")
	seen := map[string]bool{}
	out := []string{}
	for _, c := range found {
		if !strings.HasPrefix(c, current) || seen[c] {
			continue
		}
		seen[c] = true

		if collapse && strings.HasPrefix(c, "-") {
			if _, value, ok := strings.Cut(c, "="); ok {
				c = value
			}
		}
		out = append(out, strings.ReplaceAll(c, " ", `\ `))
	}

	return out
}
