package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	raw bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a report of a transactions file" }
func (*summaryCmd) Usage() string {
	return `payments summary [-raw] <transactions.csv>

  Applies all transactions of the CSV file and displays a report with the
  account statements and every transaction that was not applied.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the raw markdown instead of rendering it.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger := newLogger()
	defer logger.Sync()

	_, report, status := processArg(ctx, f, logger)
	if status != subcommands.ExitSuccess {
		return status
	}
	if err := AppendDeadLetters(report.DeadLetters); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving dead letters: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.SummaryMarkdown(report, *currency)
	if c.raw {
		fmt.Print(md)
	} else {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}
