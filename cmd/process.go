package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	strict bool
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "apply a transactions file and print account statements" }
func (*processCmd) Usage() string {
	return `payments process [-strict] <transactions.csv>

  Applies all transactions of the CSV file in order and prints the resulting
  account statements as CSV on stdout.

  Transactions that point to corrupted input are appended to the dead-letter
  file when one is set with the global -dead-letter-file flag.
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Exit with a failure status if any transaction was dead-lettered or malformed.")
}

func (c *processCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger := newLogger()
	defer logger.Sync()

	_, report, status := processArg(ctx, f, logger)
	if status != subcommands.ExitSuccess {
		return status
	}

	if err := payments.EncodeStatements(os.Stdout, slices.Values(report.Statements)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing statements: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := AppendDeadLetters(report.DeadLetters); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving dead letters: %v\n", err)
		return subcommands.ExitFailure
	}
	printCounts(report)

	if c.strict && len(report.DeadLetters)+len(report.Malformed) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
