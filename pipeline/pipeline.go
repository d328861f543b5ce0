package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/teatak/postag/config"
	"github.com/teatak/postag/hmm"
	"github.com/teatak/postag/tagger"
	"github.com/teatak/postag/util"
)

// Result collects what a pipeline run produced.
type Result struct {
	Store     *hmm.Store
	Sentences int
	Report    *tagger.Report
}

// Train loads the tagged corpus named by cfg and trains a store from it.
func Train(cfg *config.Config) (*hmm.Store, error) {
	if !util.FileExists(cfg.Train) {
		return nil, fmt.Errorf("training corpus %s not found: %w", cfg.Train, os.ErrNotExist)
	}
	reader := cfg.Reader()
	data, err := reader.LoadTagged(cfg.Train)
	if err != nil {
		return nil, fmt.Errorf("load training corpus: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("training corpus %s is empty", cfg.Train)
	}
	start := time.Now()
	store, err := hmm.Train(data, cfg.Options()...)
	if err != nil {
		return nil, fmt.Errorf("train %s: %w", cfg.Train, err)
	}
	log.Printf("Trained on %d sentences in %s: %v", len(data), time.Since(start).Round(time.Millisecond), store)
	return store, nil
}

// Run trains a model, tags the test corpus into the output file and,
// when a gold corpus is configured, evaluates against it.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	log.Println("=== Starting Tagging Pipeline ===")
	log.Printf("Time: %s", time.Now().Format(time.RFC3339))

	log.Println("[1/3] Training model...")
	store, err := Train(cfg)
	if err != nil {
		return nil, err
	}
	res := &Result{Store: store}
	tg := tagger.NewTagger(store, cfg.Reader())

	log.Println("[2/3] Tagging test corpus...")
	if cfg.Test != "" && !util.FileExists(cfg.Test) {
		return nil, fmt.Errorf("test corpus %s not found: %w", cfg.Test, os.ErrNotExist)
	}
	if cfg.Test != "" {
		n, err := TagFile(ctx, tg, cfg.Test, cfg.Output, cfg.NumWorkers())
		if err != nil {
			return nil, err
		}
		res.Sentences = n
		log.Printf("Tagged %d sentences into %s", n, cfg.Output)
	} else {
		log.Println("No test corpus configured, skipping.")
	}

	log.Println("[3/3] Evaluating...")
	if cfg.Gold != "" {
		gold, err := cfg.Reader().LoadGold(cfg.Gold)
		if err != nil {
			return nil, fmt.Errorf("load gold corpus: %w", err)
		}
		report, err := tg.Evaluate(ctx, gold, cfg.NumWorkers())
		if err != nil {
			return nil, fmt.Errorf("evaluate: %w", err)
		}
		res.Report = report
		log.Printf("Accuracy %.2f%% over %d tokens", report.Accuracy()*100, report.Tokens)
	} else {
		log.Println("No gold corpus configured, skipping.")
	}

	log.Println("=== Tagging Pipeline Completed ===")
	return res, nil
}

// TagFile tags every plain sentence of inputPath and writes one tagged line per sentence.
func TagFile(ctx context.Context, tg *tagger.Tagger, inputPath, outputPath string, workers int) (int, error) {
	sentences, err := tg.Reader.LoadPlain(inputPath)
	if err != nil {
		return 0, fmt.Errorf("load test corpus: %w", err)
	}
	tagged, err := tg.TagAll(ctx, sentences, workers)
	if err != nil {
		return 0, fmt.Errorf("tag %s: %w", inputPath, err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return 0, err
	}
	defer outFile.Close()

	writer := bufio.NewWriter(outFile)
	for _, tokens := range tagged {
		fmt.Fprintln(writer, tg.Reader.Format(tokens))
	}
	if err := writer.Flush(); err != nil {
		return 0, err
	}
	return len(tagged), nil
}
