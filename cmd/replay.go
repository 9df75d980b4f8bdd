package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

// replayCmd holds the flags for the 'replay' subcommand.
type replayCmd struct {
	output string
}

func (*replayCmd) Name() string     { return "replay" }
func (*replayCmd) Synopsis() string { return "apply a transactions file then retry its dead letters" }
func (*replayCmd) Usage() string {
	return `payments -dead-letter-file <file.jsonl> replay [-o <file.jsonl>] <transactions.csv>

  Applies all transactions of the CSV file, typically the batch holding the
  messages that were missing, then applies the dead letters of the
  dead-letter file again, in order, and prints the resulting account
  statements as CSV.

  Dead letters that still fail are written to the -o file, or back to the
  dead-letter file when -o is not set.
`
}

func (c *replayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "File where remaining dead letters are written. Defaults to the dead-letter file.")
}

func (c *replayCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *deadLetterFile == "" {
		fmt.Fprintln(os.Stderr, "Error: replay requires -dead-letter-file")
		return subcommands.ExitUsageError
	}
	letters, err := decodeDeadLetterFile(*deadLetterFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading dead-letter file %q: %v\n", *deadLetterFile, err)
		return subcommands.ExitFailure
	}

	logger := newLogger()
	defer logger.Sync()

	engine, report, status := processArg(ctx, f, logger)
	if status != subcommands.ExitSuccess {
		return status
	}

	stillFailing, applied := payments.Replay(engine, letters)
	if err := payments.EncodeStatements(os.Stdout, engine.Store().Statements()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing statements: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = *deadLetterFile
	}
	// the dead letters of this run are kept along the ones that still fail.
	if err := writeDeadLetterFile(output, append(stillFailing, report.DeadLetters...)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dead-letter file %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "%d dead letters: %d applied, %d rejected and dropped, %d still failing\n",
		len(letters), applied, len(letters)-applied-len(stillFailing), len(stillFailing))
	return subcommands.ExitSuccess
}

func decodeDeadLetterFile(name string) ([]payments.DeadLetter, error) {
	f, err := os.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return payments.DecodeDeadLetters(f)
}

// writeDeadLetterFile replaces the content of name with letters.
//
// Letters are written to a temporary file first, which is then renamed over
// name, so that name is left untouched if the write fails.
func writeDeadLetterFile(name string, letters []payments.DeadLetter) error {
	tmp := name + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := encodeDeadLetters(f, letters); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, name)
}

// encodeDeadLetters is the encoder used by writeDeadLetterFile.
var encodeDeadLetters = func(w io.Writer, letters []payments.DeadLetter) error {
	for _, dl := range letters {
		if err := payments.EncodeDeadLetter(w, dl); err != nil {
			return err
		}
	}
	return nil
}
