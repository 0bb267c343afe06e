package argtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/ef-ds/deque"
	"github.com/iancoleman/strcase"
	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/i18n"
	"github.com/napalu/argtree/util"
)

// Renderer turns rules into the lines of a help text
type Renderer interface {
	// RuleName returns the keywords and value placeholders of a rule
	RuleName(rule Rule) string
	// RuleDescription returns the help text of a rule with its default, required marker and choices
	RuleDescription(rule Rule) string
	// CommandUsage returns the usage line of the level a RunContext resolved to
	CommandUsage(program string, ctx *RunContext) string
}

// DefaultRenderer renders help texts with the messages of an i18n.Bundle
type DefaultRenderer struct {
	bundle *i18n.Bundle
	width  int
}

// NewRenderer creates a DefaultRenderer. A nil bundle selects i18n.Default() and a width <= 0
// util.DefaultWidth.
func NewRenderer(bundle *i18n.Bundle, width int) *DefaultRenderer {
	if bundle == nil {
		bundle = i18n.Default()
	}
	if width <= 0 {
		width = util.DefaultWidth
	}

	return &DefaultRenderer{bundle: bundle, width: width}
}

// Placeholder returns the SCREAMING_SNAKE_CASE form of a variable name used in usage texts
func Placeholder(name string) string {
	return strcase.ToScreamingSnake(name)
}

func (r *DefaultRenderer) RuleName(rule Rule) string {
	switch v := rule.(type) {
	case *SubcommandRule:
		return strings.Join(v.Keywords(), ", ")
	case *FlagRule:
		return strings.Join(v.Keywords(), ", ")
	case *PrimaryOptionRule:
		return strings.Join(v.Keywords(), ", ") + childPlaceholders(v.Children())
	case *ParameterRule:
		return strings.Join(v.Keywords(), ", ") + " " + Placeholder(v.Name())
	case *DictionaryRule:
		return strings.Join(v.Keywords(), ", ") + " KEY VALUE"
	case *ArgumentRule:
		return Placeholder(v.Name())
	case *ManyArgumentsRule:
		return Placeholder(v.Name()) + "..."
	}

	return ""
}

func (r *DefaultRenderer) RuleDescription(rule Rule) string {
	parts := []string{}
	if help := rule.Help(); help != "" {
		parts = append(parts, help)
	}

	v, ok := rule.(ValueRule)
	if !ok {
		return strings.Join(parts, " ")
	}

	var notes []string
	if def, ok := v.Default(); ok {
		notes = append(notes, r.bundle.T(errs.MsgDefaultKey, def))
	}
	if v.Required() {
		notes = append(notes, r.bundle.T(errs.MsgRequiredKey))
	}
	if v.HasChoices() {
		notes = append(notes, r.bundle.T(errs.MsgChoicesKey, joinChoices(v.Choices(""))))
	}
	if len(notes) > 0 {
		parts = append(parts, "("+strings.Join(notes, ", ")+")")
	}

	return strings.Join(parts, " ")
}

func (r *DefaultRenderer) CommandUsage(program string, ctx *RunContext) string {
	parts := []string{program}
	for _, c := range ctx.ActiveSubcommands {
		parts = append(parts, c.Keywords()[0])
	}

	var options, commands bool
	var positionals []string
	for _, rule := range ctx.ActiveRules {
		switch v := rule.(type) {
		case *SubcommandRule:
			commands = true
		case *FlagRule, *ParameterRule, *DictionaryRule, *PrimaryOptionRule:
			options = true
		case *ArgumentRule:
			if v.Required() {
				positionals = append(positionals, Placeholder(v.Name()))
			} else {
				positionals = append(positionals, "["+Placeholder(v.Name())+"]")
			}
		case *ManyArgumentsRule:
			positionals = append(positionals, "["+Placeholder(v.Name())+"...]")
		}
	}

	if options {
		parts = append(parts, "[OPTIONS]")
	}
	parts = append(parts, positionals...)
	if commands {
		parts = append(parts, "COMMAND")
	}

	return strings.Join(parts, " ")
}

// Render writes the usage line followed by the options, arguments and commands of the level ctx
// resolved to. description is printed under the usage line when not empty.
func (r *DefaultRenderer) Render(w io.Writer, program, description string, ctx *RunContext) error {
	var b strings.Builder
	b.WriteString(r.bundle.T(errs.MsgUsageKey) + " " + r.CommandUsage(program, ctx) + "\n")
	if description != "" {
		b.WriteString("\n" + description + "\n")
	}

	var options, arguments []Rule
	for _, rule := range ctx.ActiveRules {
		switch rule.(type) {
		case *FlagRule, *ParameterRule, *DictionaryRule, *PrimaryOptionRule:
			options = append(options, rule)
		case *ArgumentRule, *ManyArgumentsRule:
			arguments = append(arguments, rule)
		}
	}

	r.section(&b, r.bundle.T(errs.MsgOptionsKey), r.rows(options))
	r.section(&b, r.bundle.T(errs.MsgArgumentsKey), r.rows(arguments))
	r.section(&b, r.bundle.T(errs.MsgCommandsKey), r.commandRows(ctx.ActiveRules))

	_, err := io.WriteString(w, b.String())
	return err
}

type row struct {
	name        string
	description string
}

func (r *DefaultRenderer) rows(rules []Rule) []row {
	rows := make([]row, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, row{name: r.RuleName(rule), description: r.RuleDescription(rule)})
	}

	return rows
}

type commandEntry struct {
	command *SubcommandRule
	depth   int
}

// commandRows lists the subcommand tree below rules depth first, nested commands indented
func (r *DefaultRenderer) commandRows(rules []Rule) []row {
	stack := deque.New()
	pushCommands(stack, rules, 0)

	var rows []row
	for stack.Len() > 0 {
		v, _ := stack.PopFront()
		entry := v.(commandEntry)
		rows = append(rows, row{
			name:        strings.Repeat("  ", entry.depth) + r.RuleName(entry.command),
			description: r.RuleDescription(entry.command),
		})
		pushCommands(stack, entry.command.Children(), entry.depth+1)
	}

	return rows
}

// pushCommands pushes the subcommands among rules to the front of stack, keeping their
// declaration order
func pushCommands(stack *deque.Deque, rules []Rule, depth int) {
	for i := len(rules) - 1; i >= 0; i-- {
		if s, ok := rules[i].(*SubcommandRule); ok {
			stack.PushFront(commandEntry{command: s, depth: depth})
		}
	}
}

func (r *DefaultRenderer) section(b *strings.Builder, title string, rows []row) {
	if len(rows) == 0 {
		return
	}

	nameWidth := 0
	for _, rw := range rows {
		if len(rw.name) > nameWidth {
			nameWidth = len(rw.name)
		}
	}

	const indent = 2
	const gap = 3
	descWidth := r.width - indent - nameWidth - gap
	pad := strings.Repeat(" ", indent+nameWidth+gap)

	b.WriteString("\n" + title + "\n")
	for _, rw := range rows {
		lines := wrap(rw.description, descWidth)
		if len(lines) == 0 {
			b.WriteString(strings.Repeat(" ", indent) + rw.name + "\n")
			continue
		}
		fmt.Fprintf(b, "%s%-*s%s%s\n", strings.Repeat(" ", indent), nameWidth, rw.name, strings.Repeat(" ", gap), lines[0])
		for _, line := range lines[1:] {
			b.WriteString(pad + line + "\n")
		}
	}
}

// wrap splits text into lines of at most width runes, breaking on spaces. Words longer than
// width get a line of their own. A width below 20 disables wrapping.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width < 20 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len([]rune(line))+1+len([]rune(word)) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}

	return append(lines, line)
}

func childPlaceholders(children []Rule) string {
	var parts []string
	for _, c := range children {
		switch v := c.(type) {
		case *ArgumentRule:
			parts = append(parts, "["+Placeholder(v.Name())+"]")
		case *ManyArgumentsRule:
			parts = append(parts, "["+Placeholder(v.Name())+"...]")
		}
	}
	if len(parts) == 0 {
		return ""
	}

	return " " + strings.Join(parts, " ")
}
