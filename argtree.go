// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package argtree parses command lines against a declarative tree of rules.
//
// A command line is described by rules:
//
//	Subcommand    - narrows the context when it is the first unconsumed argument
//	PrimaryOption - matched anywhere, runs its own subtree exclusively
//	Flag          - a boolean toggle or, when multiple, an occurrence counter
//	Parameter     - a named value (--name value or --name=value)
//	Dictionary    - key/value pairs collected from --name key value triples
//	Argument      - a single positional value
//	Arguments     - a run of positional values collected into a list or a joined string
//	DefaultAction - the fallback action of a level and of the levels below it
//
// Subcommands and primary options own child rules, composed with Has. Flags, parameters and
// dictionaries may appear anywhere on the command line: they are swept out of the arguments
// before subcommands and positional values are resolved. Parsing in dry-run mode discovers the
// context a partial command line resolves to without raising syntax errors, which is what
// autocompletion and help rely on.
package argtree

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/i18n"
	"github.com/napalu/argtree/util"
)

// App is a command-line program: a rule tree, the built-in options and the policy applied to
// errors and empty invocations
type App struct {
	name          string
	version       string
	description   string
	rules         []Rule
	defaultAction *Action
	strict        bool
	helpOnEmpty   bool
	usageOnError  bool
	reraise       bool
	builtins      bool
	stdout        io.Writer
	stderr        io.Writer
	logger        *slog.Logger
	builtinSet    []Rule
	topLevel      []Rule
	parser        *Parser
	dryParser     *Parser
}

// New creates an App configured with configs
//
// Usage example:
//
//	app, err := argtree.New(
//		argtree.WithName("greet"),
//		argtree.WithDefaultAction(argtree.Call(func(name string) {
//			fmt.Println("Hello", name)
//		}, "name")),
//	)
//	if err != nil {
//		// handle error
//	}
//	app.Has(argtree.NewArgument("name").Set(argtree.WithDefault("world")))
//	os.Exit(app.RunOS())
func New(configs ...ConfigureAppFunc) (*App, error) {
	app := &App{
		name:     filepath.Base(os.Args[0]),
		reraise:  true,
		builtins: true,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	var found []error
	for _, config := range configs {
		var err error
		config(app, &err)
		if err != nil {
			found = append(found, err)
		}
	}
	if len(found) > 0 {
		return nil, errors.Join(found...)
	}

	if app.logger == nil {
		app.logger = util.NewLogger(app.stderr, slog.LevelWarn)
	}
	if app.defaultAction != nil {
		app.builtinSet = append(app.builtinSet, NewDefaultAction(app.defaultAction))
	}
	if app.builtins {
		app.builtinSet = append(app.builtinSet, app.builtinRules()...)
	}

	return app, nil
}

// Has appends rules to the top level
func (a *App) Has(rules ...Rule) *App {
	a.rules = append(a.rules, rules...)
	a.topLevel = nil
	a.parser = nil
	a.dryParser = nil

	return a
}

// Rules returns the top level rules: the rules added with Has, the default action and the
// built-in options. The default action and built-in rules are created once per App.
func (a *App) Rules() []Rule {
	return append([]Rule{}, a.rulesOnce()...)
}

func (a *App) rulesOnce() []Rule {
	if a.topLevel == nil {
		a.topLevel = append(append([]Rule{}, a.rules...), a.builtinSet...)
	}

	return a.topLevel
}

// Name returns the program name
func (a *App) Name() string {
	return a.name
}

func (a *App) ensureParser() (*Parser, error) {
	if a.parser != nil {
		return a.parser, nil
	}

	p, err := NewParser(a.rulesOnce(), WithStrict(a.strict), WithParserLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.parser = p

	return p, nil
}

// parseDry resolves args with a dry-run Parser shared by help, usage and completion
func (a *App) parseDry(args []string) (*RunContext, error) {
	if a.dryParser == nil {
		p, err := NewParser(a.rulesOnce(), WithDryRun(true), WithParserLogger(util.NopLogger()))
		if err != nil {
			return nil, err
		}
		a.dryParser = p
	}

	return a.dryParser.Parse(args)
}

// Parse matches args against the rules without running any action
func (a *App) Parse(args []string) (*RunContext, error) {
	p, err := a.ensureParser()
	if err != nil {
		return nil, err
	}

	return p.Parse(args)
}

// Run parses args and invokes the resolved action.
//
// A syntax error is logged and, with WithUsageOnError, followed by the usage line of the level the
// arguments resolved to; it is returned unless WithReraise(false) was used. Definition errors and
// errors returned by the action are always returned. When no action resolves and WithHelpOnEmpty
// is set, the help of the active level is printed.
func (a *App) Run(args []string) error {
	ctx, err := a.Parse(args)
	if err != nil {
		if !errs.IsSyntax(err) {
			return err
		}
		a.logger.Error(i18n.Default().T(errs.MsgSyntaxErrorKey), "error", err.Error())
		if a.usageOnError {
			a.printUsage(a.stderr, args)
		}
		if a.reraise {
			return err
		}
		return nil
	}

	if ctx.Action == nil {
		if a.helpOnEmpty {
			return a.PrintHelp(a.stdout, activePath(ctx)...)
		}
		return nil
	}

	return ctx.Invoke()
}

// RunOS runs the App with os.Args and returns the exit code: 0 on success, 1 otherwise
func (a *App) RunOS() int {
	if err := a.Run(os.Args[1:]); err != nil {
		return 1
	}

	return 0
}

// Complete returns the completion candidates for a partial command line, see Complete
func (a *App) Complete(cmdline string, wordIdx int) ([]string, error) {
	return complete(a.parseDry, cmdline, wordIdx)
}

// PrintHelp writes the help of the level the subcommand path resolves to
func (a *App) PrintHelp(w io.Writer, path ...string) error {
	ctx, err := a.parseDry(path)
	if err != nil {
		return err
	}

	description := a.description
	if n := len(ctx.ActiveSubcommands); n > 0 {
		description = ctx.ActiveSubcommands[n-1].Help()
	}

	return NewRenderer(nil, util.Width(w)).Render(w, a.name, description, ctx)
}

func (a *App) printUsage(w io.Writer, args []string) {
	ctx, err := a.parseDry(args)
	if err != nil {
		return
	}

	r := NewRenderer(nil, util.Width(w))
	_, _ = io.WriteString(w, i18n.Default().T(errs.MsgUsageKey)+" "+r.CommandUsage(a.name, ctx)+"\n")
}

func activePath(ctx *RunContext) []string {
	path := make([]string, 0, len(ctx.ActiveSubcommands))
	for _, c := range ctx.ActiveSubcommands {
		path = append(path, c.Keywords()[0])
	}

	return path
}
