package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/teatak/postag/corpus"
	"github.com/teatak/postag/hmm"
)

// Default data locations.
const (
	TrainFile  = "data/train.txt"
	TestFile   = "data/test.txt"
	OutputFile = "data/tagged.txt"
)

// Config describes where the corpora live and how they are read and decoded.
type Config struct {
	Train  string `yaml:"train"`
	Test   string `yaml:"test"`
	Gold   string `yaml:"gold"`
	Output string `yaml:"output"`

	Separator  string  `yaml:"separator"`
	StartWord  string  `yaml:"start_word"`
	EndWord    string  `yaml:"end_word"`
	Floor      float64 `yaml:"floor"`
	Normalize  bool    `yaml:"normalize"`
	SplitPunct bool    `yaml:"split_punct"`

	// Workers bounds parallel decoding; 0 means one per CPU.
	Workers int    `yaml:"workers"`
	Addr    string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Train:     TrainFile,
		Test:      TestFile,
		Output:    OutputFile,
		Separator: string(hmm.DefaultSeparator),
		StartWord: corpus.DefaultStartWord,
		EndWord:   corpus.DefaultEndWord,
		Floor:     hmm.FloorProb,
		Normalize: true,
		Addr:      ":8080",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise break training or decoding.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", c.Separator)
	}
	if c.Floor <= 0 || c.Floor >= 1 {
		return fmt.Errorf("floor must be in (0, 1), got %v", c.Floor)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.StartWord == "" || c.EndWord == "" {
		return errors.New("start_word and end_word are required")
	}
	if c.StartWord == c.EndWord {
		return fmt.Errorf("start_word and end_word must differ, both are %q", c.StartWord)
	}
	return nil
}

// SeparatorRune returns the word/tag separator.
func (c *Config) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Separator)
	return r
}

// NumWorkers resolves Workers, mapping 0 to the CPU count.
func (c *Config) NumWorkers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Reader builds a corpus reader matching the configuration.
func (c *Config) Reader() *corpus.Reader {
	return &corpus.Reader{
		Separator:  c.SeparatorRune(),
		StartWord:  c.StartWord,
		EndWord:    c.EndWord,
		Normalize:  c.Normalize,
		SplitPunct: c.SplitPunct,
	}
}

// Options returns the training options matching the configuration.
func (c *Config) Options() []hmm.Option {
	return []hmm.Option{
		hmm.WithSeparator(c.SeparatorRune()),
		hmm.WithFloor(c.Floor),
	}
}
