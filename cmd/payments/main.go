package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/payments/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	known := map[string]bool{"help": true, "flags": true}

	for _, c := range cmd.Commands {
		commander.Register(c, "")
		known[c.Name()] = true
	}

	// exits when invoked by the shell to complete a command line.
	cmd.Completion(flag.CommandLine).Complete(name)

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !known[sub] {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
