// Package cmd implements the CLI application to process payments.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/payments"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Environment variables providing defaults for the global flags.
const (
	EnvVerbose        = "PAYMENTS_VERBOSE"
	EnvDeadLetterFile = "PAYMENTS_DEAD_LETTER_FILE"
	EnvCurrency       = "PAYMENTS_CURRENCY"
)

// Commands lists every subcommand of the application.
var Commands = []subcommands.Command{
	&processCmd{},
	&summaryCmd{},
	&queryCmd{},
	&replayCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	verbose        = flag.Bool("v", envBool(EnvVerbose), "Verbose logging. Defaults to $"+EnvVerbose+".")
	deadLetterFile = flag.String("dead-letter-file", os.Getenv(EnvDeadLetterFile), "Path to the JSONL file where dead letters are appended. Defaults to $"+EnvDeadLetterFile+".")
	currency       = flag.String("currency", os.Getenv(EnvCurrency), "ISO currency code used to display amounts in reports. Defaults to $"+EnvCurrency+".")
)

func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}

// newLogger returns the application logger: a development logger in verbose
// mode, warnings and errors only otherwise. Logs go to stderr.
func newLogger() *zap.Logger {
	if *verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			return logger
		}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// processFile applies all transactions of the CSV file name to engine.
func processFile(ctx context.Context, name string, engine *payments.Engine) (*payments.Report, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return payments.Process(ctx, f, engine)
}

// processArg runs the transactions file given as the single argument of f
// against a fresh engine. Errors are reported on stderr.
func processArg(ctx context.Context, f *flag.FlagSet, logger *zap.Logger) (*payments.Engine, *payments.Report, subcommands.ExitStatus) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one transactions file")
		return nil, nil, subcommands.ExitUsageError
	}
	engine := payments.NewEngine(payments.NewMemoryStore(), logger)
	report, err := processFile(ctx, f.Arg(0), engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing transactions file %q: %v\n", f.Arg(0), err)
		return nil, nil, subcommands.ExitFailure
	}
	return engine, report, subcommands.ExitSuccess
}

// AppendDeadLetters appends dead letters to the app dead-letter file, if any.
func AppendDeadLetters(letters []payments.DeadLetter) error {
	filename := *deadLetterFile
	if filename == "" || len(letters) == 0 {
		return nil
	}
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open dead-letter file %q: %w", filename, err)
	}
	defer f.Close()

	for _, dl := range letters {
		if err := payments.EncodeDeadLetter(f, dl); err != nil {
			return fmt.Errorf("cannot write to dead-letter file %q: %w", filename, err)
		}
	}
	return nil
}

// printMarkdown renders markdown for the terminal, or prints it as is if it
// cannot be rendered.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// printCounts reports on stderr what was not applied.
func printCounts(r *payments.Report) {
	if len(r.Rejected)+len(r.DeadLetters)+len(r.Malformed) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d rejected, %d dead letters, %d malformed rows\n", len(r.Rejected), len(r.DeadLetters), len(r.Malformed))
}
