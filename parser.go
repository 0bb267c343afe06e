package argtree

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/i18n"
	"github.com/napalu/argtree/types/queue"
	"github.com/napalu/argtree/util"
)

// Parser matches argument vectors against a validated rule tree. A Parser can be reused, every
// call to Parse works on fresh variable stores.
type Parser struct {
	rules  []Rule
	frozen []Rule
	dry    bool
	strict bool
	logger *slog.Logger
}

// ConfigureParserFunc configures a Parser
type ConfigureParserFunc func(p *Parser)

// WithDryRun makes Parse discover the active context only: syntax errors are swallowed,
// required and choice checks are skipped and the resulting RunContext never invokes its action
func WithDryRun(dry bool) ConfigureParserFunc {
	return func(p *Parser) {
		p.dry = dry
	}
}

// WithStrict makes unconsumed arguments a syntax error instead of a warning
func WithStrict(strict bool) ConfigureParserFunc {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithParserLogger sets the logger non-fatal warnings are reported to
func WithParserLogger(logger *slog.Logger) ConfigureParserFunc {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser validates the rule tree and freezes every rule reachable from rules. The returned
// error joins every definition error found in the tree.
func NewParser(rules []Rule, configs ...ConfigureParserFunc) (*Parser, error) {
	p := &Parser{
		rules:  rules,
		logger: util.NewLogger(os.Stderr, slog.LevelWarn),
	}
	for _, config := range configs {
		config(p)
	}

	frozen, err := validateTree(rules)
	if err != nil {
		return nil, err
	}
	p.frozen = frozen

	return p, nil
}

// Parse builds a Parser over rules and parses args with it
func Parse(rules []Rule, args []string, configs ...ConfigureParserFunc) (*RunContext, error) {
	p, err := NewParser(rules, configs...)
	if err != nil {
		return nil, err
	}

	return p.Parse(args)
}

// ParseDry parses args in dry-run mode to discover the context they resolve to
func ParseDry(rules []Rule, args []string) (*RunContext, error) {
	return Parse(rules, args, WithDryRun(true), WithParserLogger(util.NopLogger()))
}

// Parse matches args against the rule tree and returns the resolved context. The action is not
// invoked, call RunContext.Invoke for that.
func (p *Parser) Parse(args []string) (*RunContext, error) {
	if err := p.lateErrors(); err != nil {
		return nil, err
	}

	q := queue.New(args)
	root := newFrame(p, p.rules, nil, nil, nil, false)

	leaf, err := root.parse(q)
	if err != nil {
		if p.dry && errs.IsSyntax(err) {
			return root.deepest().context(q.Items()), nil
		}
		return nil, err
	}

	ctx := leaf.context(q.Items())
	if len(ctx.Remaining) == 0 || p.dry {
		return ctx, nil
	}

	if p.strict {
		return nil, errs.NewSyntaxError(errs.ErrUnrecognizedArgs, strings.Join(ctx.Remaining, " "))
	}
	ctx.warn(i18n.Default().T(errs.MsgSuperfluousArgsKey), "arguments", ctx.Remaining)

	return ctx, nil
}

// lateErrors joins the definition errors recorded on frozen rules since the Parser was built
func (p *Parser) lateErrors() error {
	var found []error
	for _, r := range p.frozen {
		if err := r.Err(); err != nil {
			found = append(found, err)
		}
	}

	return errors.Join(found...)
}

// DryRun reports whether the Parser only discovers contexts
func (p *Parser) DryRun() bool {
	return p.dry
}

// RunContext is the outcome of a parse: the action to run, the active subcommand chain, the
// rules visible at the deepest active level and the merged variables.
type RunContext struct {
	// Action is the resolved action, nil when nothing is to be run
	Action *Action
	// ActiveSubcommands is the chain of matched subcommands and primary options, root first
	ActiveSubcommands []CommandRule
	// ActiveRules are the rules of the deepest active level
	ActiveRules []Rule
	// Vars holds the variables of every active level, deeper levels winning on name clashes
	Vars Args
	// Remaining are the arguments no rule consumed, in their original order
	Remaining []string
	// Warnings collects non-fatal problems reported while parsing and invoking
	Warnings []string

	dry    bool
	levels [][]Rule
	logger *slog.Logger
}

// Invoke runs the resolved action with the merged variables. It does nothing when no action was
// resolved or the context comes from a dry run.
func (c *RunContext) Invoke() error {
	if c.Action == nil || c.dry {
		return nil
	}

	return c.Action.invoke(c.Vars, func(name string) {
		c.warn(i18n.Default().T(errs.MsgUnresolvedParamKey), "parameter", name)
	})
}

// Dry reports whether the context comes from a dry run
func (c *RunContext) Dry() bool {
	return c.dry
}

// Levels returns the rule sets of the active levels, root first
func (c *RunContext) Levels() [][]Rule {
	levels := make([][]Rule, len(c.levels))
	copy(levels, c.levels)

	return levels
}

func (c *RunContext) warn(msg string, key string, value any) {
	c.logger.Warn(msg, key, value)
	c.Warnings = append(c.Warnings, fmt.Sprintf("%s: %v", msg, value))
}

// validateTree collects the definition errors of every rule reachable from rules, freezes those
// rules and returns them
func validateTree(rules []Rule) ([]Rule, error) {
	var (
		found     []error
		reachable []Rule
	)
	seen := map[Rule]bool{}

	var walk func(owner string, level []Rule)
	walk = func(owner string, level []Rule) {
		found = append(found, validateLevel(owner, level)...)
		for _, r := range level {
			if isNil(r) || seen[r] {
				continue
			}
			seen[r] = true
			r.base().frozen = true
			reachable = append(reachable, r)
			if cmd, ok := r.(CommandRule); ok {
				walk(describe(cmd), cmd.Children())
			}
		}
	}
	walk("root", rules)

	return reachable, errors.Join(found...)
}

func validateLevel(owner string, level []Rule) []error {
	var (
		found     []error
		unbounded *ManyArgumentsRule
	)

	for _, r := range level {
		if isNil(r) {
			found = append(found, errs.NewDefinitionError(errs.ErrNilRule, owner))
			continue
		}
		if err := r.Err(); err != nil {
			found = append(found, err)
		}

		switch v := r.(type) {
		case CommandRule:
			if a := v.Action(); a != nil && a.Err() != nil {
				found = append(found, a.Err())
			}
		case *DefaultActionRule:
			if a := v.Action(); a != nil && a.Err() != nil {
				found = append(found, a.Err())
			}
		case *ManyArgumentsRule:
			if !v.Unbounded() {
				continue
			}
			if unbounded != nil {
				found = append(found, errs.NewDefinitionError(errs.ErrMultipleUnbounded, unbounded.Name(), v.Name()))
				continue
			}
			unbounded = v
		case *ArgumentRule:
			if unbounded != nil {
				found = append(found, errs.NewDefinitionError(errs.ErrPositionalAfterUnbounded, v.Name(), unbounded.Name()))
			}
		}
	}

	return found
}
