package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/teatak/postag/config"
	"github.com/teatak/postag/pipeline"
	"github.com/teatak/postag/tagger"
)

func evalCmd() *commander.Command {
	var (
		common commonFlags
		gold   string
	)
	cmd := &commander.Command{
		UsageLine: "eval [options]",
		Short:     "measures tagging accuracy against a gold corpus",
		Long: `
trains on -train, tags the words of every -gold sentence and compares the tags

	$ postag eval -train data/train.txt -gold data/dev.txt
`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	common.register(&cmd.Flag)
	cmd.Flag.StringVar(&gold, "gold", "", "Tagged evaluation corpus")

	cmd.Run = func(cmd *commander.Command, args []string) error {
		cfg, err := common.load(&cmd.Flag, func(cfg *config.Config, name string) {
			if name == "gold" {
				cfg.Gold = gold
			}
		})
		if err != nil {
			return err
		}
		if cfg.Gold == "" {
			return errors.New("a gold corpus is required (-gold or gold: in the config)")
		}
		store, err := pipeline.Train(cfg)
		if err != nil {
			return err
		}
		sentences, err := cfg.Reader().LoadGold(cfg.Gold)
		if err != nil {
			return fmt.Errorf("load gold corpus: %w", err)
		}
		report, err := tagger.NewTagger(store, cfg.Reader()).Evaluate(context.Background(), sentences, cfg.NumWorkers())
		if err != nil {
			return err
		}
		fmt.Print(report)
		return nil
	}
	return cmd
}
