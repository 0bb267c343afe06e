package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/napalu/argtree"
	"github.com/napalu/argtree/types"
)

type pushOptions struct {
	Remote string
	Branch string
	Force  bool
	Tags   []string `arg:"tag"`
}

func main() {
	app, err := argtree.New(
		argtree.WithName("argtree-demo"),
		argtree.WithVersion("0.1.0"),
		argtree.WithDescription("Demonstrates subcommands, typed values and shell completion"),
		argtree.WithUsageOnError(true),
		argtree.WithHelpOnEmpty(true),
		argtree.WithSystemLanguage(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app.Has(
		argtree.NewFlag("v", "verbose").Set(argtree.SetMultiple(true), argtree.WithHelp("Increase verbosity")),
		argtree.NewSubcommand("greet").
			Set(
				argtree.WithHelp("Print a greeting"),
				argtree.WithRun(argtree.Call(greet, "name", "repeat", "shout")),
			).
			Has(
				argtree.NewFlag("s", "shout").Set(argtree.WithHelp("Print in upper case")),
				argtree.NewParameter("r", "repeat").Set(
					argtree.WithType(types.Int),
					argtree.WithDefault(1),
					argtree.WithHelp("Number of greetings"),
				),
				argtree.NewArgument("name").Set(argtree.WithDefault("world"), argtree.WithHelp("Who to greet")),
			),
		argtree.NewSubcommand("push").
			Set(
				argtree.WithHelp("Pretend to push a branch"),
				argtree.WithRun(argtree.Run(push)),
			).
			Has(
				argtree.NewFlag("f", "force"),
				argtree.NewParameter("tag").Set(argtree.SetMultiple(true), argtree.WithHelp("Tag to push, repeatable")),
				argtree.NewArgument("remote").Set(
					argtree.SetRequired(true),
					argtree.WithChoices("origin", "upstream"),
				),
				argtree.NewArgument("branch").Set(argtree.WithHelp("Branch to push, the current one when omitted")),
			),
		argtree.NewSubcommand("wait").
			Set(
				argtree.WithHelp("Sleep for a while"),
				argtree.WithRun(argtree.Call(wait, "for")),
			).
			Has(
				argtree.NewArgument("for").Set(argtree.WithType(types.Duration), argtree.WithDefault(time.Second)),
			),
		argtree.NewSubcommand("env").
			Set(
				argtree.WithHelp("Print environment overrides"),
				argtree.WithRun(argtree.Call(env, "set", "words")),
			).
			Has(
				argtree.NewDictionary("set").Set(argtree.WithHelp("Set NAME VALUE, repeatable")),
				argtree.NewArguments("words").Set(argtree.WithJoin(" ")),
			),
	)

	os.Exit(app.RunOS())
}

func greet(name string, repeat int, shout bool) {
	message := "Hello " + name
	if shout {
		message = strings.ToUpper(message)
	}
	for i := 0; i < repeat; i++ {
		fmt.Println(message)
	}
}

func push(args argtree.Args) error {
	var opts pushOptions
	if err := args.Decode(&opts); err != nil {
		return err
	}
	if args.Int("verbose") > 0 {
		fmt.Printf("%+v\n", opts)
	}

	branch := opts.Branch
	if branch == "" {
		branch = "HEAD"
	}
	fmt.Printf("pushing %s to %s (force=%t, tags=%v)\n", branch, opts.Remote, opts.Force, opts.Tags)

	return nil
}

func wait(d time.Duration) {
	time.Sleep(d)
}

func env(set map[string]string, words string) {
	for name, value := range set {
		fmt.Printf("%s=%s\n", name, value)
	}
	if words != "" {
		fmt.Println(words)
	}
}
