package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/teatak/postag/config"
	"github.com/teatak/postag/pipeline"
	"github.com/teatak/postag/tagger"
)

func tagCmd() *commander.Command {
	var (
		common  commonFlags
		input   string
		output  string
		showOOV bool
	)
	cmd := &commander.Command{
		UsageLine: "tag [options] [sentence]",
		Short:     "tags plain sentences",
		Long: `
tags the sentence given as arguments, every line of -in, or stdin interactively

	$ postag tag -train data/train.txt The cat meows
	$ postag tag -train data/train.txt -in data/test.txt -out data/tagged.txt
`,
		Flag: *flag.NewFlagSet("tag", flag.ExitOnError),
	}
	common.register(&cmd.Flag)
	cmd.Flag.StringVar(&input, "in", "", "Plain text file, one sentence per line")
	cmd.Flag.StringVar(&output, "out", config.OutputFile, "Output file for -in")
	cmd.Flag.BoolVar(&showOOV, "oov", false, "Report words unseen in training")

	cmd.Run = func(cmd *commander.Command, args []string) error {
		cfg, err := common.load(&cmd.Flag, nil)
		if err != nil {
			return err
		}
		store, err := pipeline.Train(cfg)
		if err != nil {
			return err
		}
		tg := tagger.NewTagger(store, cfg.Reader())

		if input != "" {
			n, err := pipeline.TagFile(context.Background(), tg, input, output, cfg.NumWorkers())
			if err != nil {
				return err
			}
			fmt.Printf("Tagged %d sentences into %s\n", n, output)
			return nil
		}

		process := func(text string) {
			tokens, err := tg.TagText(text)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			fmt.Println(tg.Reader.Format(tokens))
			if showOOV {
				words := make([]string, len(tokens))
				for i, tok := range tokens {
					words[i] = tok.Word
				}
				if oov := tg.OOV(words); len(oov) > 0 {
					fmt.Printf("OOV: %s\n", strings.Join(oov, " "))
				}
			}
		}

		if len(args) > 0 {
			process(strings.Join(args, " "))
			return nil
		}

		// Otherwise interactive mode
		fmt.Println("Enter a sentence to tag (Ctrl+D to exit):")
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			text := scanner.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}
			process(text)
		}
		return scanner.Err()
	}
	return cmd
}
