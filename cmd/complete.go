package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// currencies offered by shell completion, any ISO code is accepted.
var currencies = predict.Set{"USD", "EUR", "GBP", "JPY", "CHF", "CAD"}

// Completion returns the shell completion description of the application
// for the commands registered in Commands and the global flags of fs.
func Completion(fs *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(Commands)),
		Flags: flagPredictors(fs),
	}
	for _, c := range Commands {
		cfs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(cfs)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(cfs),
			Args:  predict.Files("*.csv"),
		}
	}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		flags[f.Name] = predictFlag(f)
	})
	return flags
}

func predictFlag(f *flag.Flag) complete.Predictor {
	switch f.Name {
	case "dead-letter-file", "o":
		return predict.Files("*.jsonl")
	case "currency":
		return currencies
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}
