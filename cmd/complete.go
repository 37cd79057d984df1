package cmd

import (
	"flag"

	"github.com/etnz/cryptotracker/docs"
	"github.com/etnz/cryptotracker/mockapi"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete runs the shell completion of the program name when invoked by the
// shell, and returns otherwise.
//
// Enable it in bash with: complete -C <path to ct> ct
func Complete(name string) {
	CompletionCommand(flag.CommandLine).Complete(name)
}

// CompletionCommand returns the completion tree of the commands, with the
// global flags defined in fs. Asset ids are predicted from the mock
// gateway's list.
func CompletionCommand(fs *flag.FlagSet) *complete.Command {
	ids := predict.Set(mockapi.IDs())
	sub := map[string]*complete.Command{}
	for _, e := range commands {
		c := e.cmd
		cc := &complete.Command{Flags: flags(c)}
		switch c.Name() {
		case "details", "add", "update", "remove":
			cc.Args = ids
		case "topic":
			cc.Args = topics()
		}
		sub[c.Name()] = cc
	}
	globals := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		globals[f.Name] = predict.Something
	})
	globals["gateway"] = predict.Set{"mock", "remote"}
	return &complete.Command{Sub: sub, Flags: globals}
}

// topics predicts the documentation topics.
func topics() complete.Predictor {
	all, _ := docs.GetAllTopics()
	return predict.Set(append(all, docs.Readme, "*"))
}

// flags returns the predictors of the command's own flags.
func flags(c subcommands.Command) map[string]complete.Predictor {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	m := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) { m[f.Name] = predict.Something })
	return m
}
