package argtree

import (
	"fmt"
	"os"

	"github.com/napalu/argtree/completion"
	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/i18n"
	"github.com/napalu/argtree/types"
)

// Keywords of the built-in primary options
const (
	HelpKeyword                = "--help"
	VersionKeyword             = "--version"
	AutocompleteKeyword        = "--autocomplete"
	InstallAutocompleteKeyword = "--install-autocomplete"
)

func (a *App) builtinRules() []Rule {
	bundle := i18n.Default()

	rules := []Rule{
		NewPrimaryOption("h", HelpKeyword).
			Set(
				WithHelp(bundle.T(errs.MsgHelpHelpKey)),
				WithRun(Call(a.help, "subcommands")),
			).
			Has(NewArguments("subcommands")),
	}

	if a.version != "" {
		rules = append(rules, NewPrimaryOption(VersionKeyword).Set(
			WithHelp(bundle.T(errs.MsgVersionHelpKey)),
			WithRun(Call(a.printVersion)),
		))
	}

	rules = append(rules,
		NewPrimaryOption(AutocompleteKeyword).
			Set(
				WithHelp(bundle.T(errs.MsgAutocompleteHelpKey)),
				WithRun(Call(a.printCompletions, "cmdline", "word_idx")),
			).
			Has(
				NewArgument("cmdline").Set(SetRequired(true)),
				NewArgument("word_idx").Set(WithType(types.Int)),
			),
		NewPrimaryOption(InstallAutocompleteKeyword).
			Set(
				WithHelp(bundle.T(errs.MsgInstallCompletionKey)),
				WithRun(Call(a.installCompletion, "shell")),
			).
			Has(
				NewArgument("shell").Set(
					WithChoices(completion.SupportedShells()...),
					SetStrictChoices(true),
					WithDefault(completion.DetectShell(os.Getenv)),
				),
			),
	)

	return rules
}

func (a *App) help(subcommands []string) error {
	return a.PrintHelp(a.stdout, subcommands...)
}

func (a *App) printVersion() {
	fmt.Fprintln(a.stdout, a.version)
}

func (a *App) printCompletions(cmdline string, wordIdx int) error {
	candidates, err := a.Complete(cmdline, wordIdx)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		fmt.Fprintln(a.stdout, c)
	}

	return nil
}

func (a *App) installCompletion(shell string) error {
	manager, err := completion.NewCompletionManager(shell, a.name)
	if err != nil {
		return err
	}

	manager.Accept(completion.CompletionData{
		CompleteFlag: AutocompleteKeyword,
		Description:  a.description,
	})
	path, err := manager.SaveCompletion()
	if err != nil {
		return errs.ErrCompletionInstall.WithArgs(shell).Wrap(err)
	}
	fmt.Fprintln(a.stdout, i18n.Default().T(errs.MsgCompletionInstalledKey, shell, path))

	return nil
}
