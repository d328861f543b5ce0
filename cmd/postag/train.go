package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/teatak/postag/pipeline"
)

func trainCmd() *commander.Command {
	var (
		common commonFlags
		dump   bool
	)
	cmd := &commander.Command{
		UsageLine: "train [options]",
		Short:     "estimates the model and prints its tables",
		Long: `
estimates transition and emission probabilities from a tagged corpus

	$ postag train -train data/train.txt [-dump]
`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	common.register(&cmd.Flag)
	cmd.Flag.BoolVar(&dump, "dump", false, "Dump the full counts and tables")

	cmd.Run = func(cmd *commander.Command, args []string) error {
		cfg, err := common.load(&cmd.Flag, nil)
		if err != nil {
			return err
		}
		store, err := pipeline.Train(cfg)
		if err != nil {
			return err
		}

		tables := store.Tables()
		fmt.Printf("States: %v\n", store.States())
		fmt.Println("Transitions:")
		for _, t := range tables.Transitions {
			fmt.Printf("  %s -> %s\t%.6f\n", t.From, t.To, t.Prob)
		}
		fmt.Println("Emissions:")
		for _, e := range tables.Emissions {
			fmt.Printf("  %s -> %s\t%.6f\n", e.Tag, e.Word, e.Prob)
		}

		if dump {
			cs := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
			cs.Dump(store.Counts(), tables)
		}
		return nil
	}
	return cmd
}
