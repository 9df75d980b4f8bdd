package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

// queryCmd holds the flags for the 'query' subcommand.
type queryCmd struct {
	path string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query account statements with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `payments query [-path <jsonpath>] <transactions.csv>

  Applies all transactions of the CSV file, then evaluates the JSONPath
  expression against the JSON array of account statements and prints the
  result as JSON. For example, the locked accounts:

    payments query -path '$[?(@.locked)].client' transactions.csv

  Filters support comparisons and arithmetic, for example the accounts with
  held funds:

    payments query -path '$[?(@.held > 0)].client' transactions.csv

  Transactions that point to corrupted input are appended to the dead-letter
  file when one is set with the global -dead-letter-file flag.
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", "$", "JSONPath expression to evaluate.")
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printCounts(report)

	jval, err := queryStatements(report.Statements, c.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", c.path, err)
		return subcommands.ExitFailure
	}
	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

// queryLanguage is JSONPath with the full gval expression language in filters.
var queryLanguage = gval.NewLanguage(gval.Full(), jsonpath.Language())

// queryStatements evaluates path against the JSON form of v.
func queryStatements(v any, path string) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, err
	}
	return queryLanguage.Evaluate(path, jobj)
}
