package main

import (
	"context"
	"fmt"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/teatak/postag/config"
	"github.com/teatak/postag/pipeline"
)

func runCmd() *commander.Command {
	var (
		common commonFlags
		test   string
		gold   string
		output string
	)
	cmd := &commander.Command{
		UsageLine: "run [options]",
		Short:     "trains, tags the test corpus and evaluates in one go",
		Long: `
runs the whole pipeline described by a configuration file

	$ postag run -c postag.yaml
`,
		Flag: *flag.NewFlagSet("run", flag.ExitOnError),
	}
	common.register(&cmd.Flag)
	cmd.Flag.StringVar(&test, "test", config.TestFile, "Plain test corpus")
	cmd.Flag.StringVar(&gold, "gold", "", "Optional tagged evaluation corpus")
	cmd.Flag.StringVar(&output, "out", config.OutputFile, "Output file for the tagged test corpus")

	cmd.Run = func(cmd *commander.Command, args []string) error {
		cfg, err := common.load(&cmd.Flag, func(cfg *config.Config, name string) {
			switch name {
			case "test":
				cfg.Test = test
			case "gold":
				cfg.Gold = gold
			case "out":
				cfg.Output = output
			}
		})
		if err != nil {
			return err
		}
		res, err := pipeline.Run(context.Background(), cfg)
		if err != nil {
			return err
		}
		if res.Report != nil {
			fmt.Print(res.Report)
		}
		return nil
	}
	return cmd
}
