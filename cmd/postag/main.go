package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func newApp() *commander.Command {
	return &commander.Command{
		UsageLine: os.Args[0] + " <command> [options]",
		Short:     "first-order HMM part-of-speech tagger",
		Subcommands: []*commander.Command{
			trainCmd(),
			tagCmd(),
			evalCmd(),
			runCmd(),
		},
		Flag: *flag.NewFlagSet("postag", flag.ExitOnError),
	}
}

func main() {
	log.SetPrefix("[POSTAG] ")
	if err := newApp().Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}
