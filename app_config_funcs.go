package argtree

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/i18n"
	"golang.org/x/text/language"
)

// ConfigureAppFunc configures an App
type ConfigureAppFunc func(app *App, err *error)

// WithName sets the program name shown in usage texts and used for completion scripts
func WithName(name string) ConfigureAppFunc {
	return func(app *App, err *error) {
		if name == "" {
			*err = errs.NewDefinitionError(errs.ErrInvalidConfig, "empty program name")
			return
		}
		app.name = name
	}
}

// WithVersion sets the version printed by --version. The option only exists when a version is set.
func WithVersion(version string) ConfigureAppFunc {
	return func(app *App, err *error) {
		app.version = version
	}
}

// WithDescription sets the text printed under the usage line of the top level help
func WithDescription(description string) ConfigureAppFunc {
	return func(app *App, err *error) {
		app.description = description
	}
}

// WithDefaultAction sets the action run when no subcommand or primary option with an action of
// its own matched
func WithDefaultAction(action *Action) ConfigureAppFunc {
	return func(app *App, err *error) {
		app.defaultAction = action
	}
}

// WithStrictArgs makes unconsumed arguments a syntax error
func WithStrictArgs(strict bool) ConfigureAppFunc {
	return func(app *App, err *error) {
		app.strict = strict
	}
}

// WithHelpOnEmpty prints the help of the active level when no action resolves
func WithHelpOnEmpty(help bool) ConfigureAppFunc {
	return func(app *App, err *error) {
		app.helpOnEmpty = help
	}
}

// WithUsageOnError prints the usage line to stderr when a syntax error occurs
func WithUsageOnError(usage bool) ConfigureAppFunc {
	return func(app *App, err *error) {
		app.usageOnError = usage
	}
}

// WithReraise controls whether Run returns syntax errors after reporting them. Defaults to true.
func WithReraise(reraise bool) ConfigureAppFunc {
	return func(app *App, err *error) {
		app.reraise = reraise
	}
}

// WithBuiltins enables the --help, --version, --autocomplete and --install-autocomplete primary
// options. Defaults to true.
func WithBuiltins(builtins bool) ConfigureAppFunc {
	return func(app *App, err *error) {
		app.builtins = builtins
	}
}

// WithStdout sets the writer help, version and completion output goes to
func WithStdout(w io.Writer) ConfigureAppFunc {
	return func(app *App, err *error) {
		if w == nil {
			*err = errs.NewDefinitionError(errs.ErrInvalidConfig, "nil stdout writer")
			return
		}
		app.stdout = w
	}
}

// WithStderr sets the writer usage on error goes to. Unless WithLogger is used the default
// logger writes there as well.
func WithStderr(w io.Writer) ConfigureAppFunc {
	return func(app *App, err *error) {
		if w == nil {
			*err = errs.NewDefinitionError(errs.ErrInvalidConfig, "nil stderr writer")
			return
		}
		app.stderr = w
	}
}

// WithLogger sets the logger syntax errors and warnings are reported to
func WithLogger(logger *slog.Logger) ConfigureAppFunc {
	return func(app *App, err *error) {
		app.logger = logger
	}
}

// WithLanguage selects the language of messages and errors. The language must be known to the
// default bundle.
func WithLanguage(lang language.Tag) ConfigureAppFunc {
	return func(app *App, err *error) {
		if e := i18n.Default().SetDefaultLanguage(lang); e != nil {
			*err = errors.Join(errs.NewDefinitionError(errs.ErrInvalidConfig, lang.String()), e)
		}
	}
}

// WithSystemLanguage selects the loaded language closest to the locale of the environment
// (LC_ALL, LC_MESSAGES, LANG). The language is left unchanged when none matches.
func WithSystemLanguage() ConfigureAppFunc {
	return func(app *App, err *error) {
		bundle := i18n.Default()
		tag, ok := i18n.DetectLanguage(os.Getenv)
		if !ok {
			return
		}
		if lang, confidence := bundle.Match(tag); confidence != language.No {
			*err = bundle.SetDefaultLanguage(lang)
		}
	}
}
