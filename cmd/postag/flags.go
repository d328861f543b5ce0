package main

import (
	"github.com/gonuts/flag"

	"github.com/teatak/postag/config"
)

// commonFlags are shared by every subcommand. Values override the config file
// only when given on the command line.
type commonFlags struct {
	configPath string
	train      string
	separator  string
	floor      float64
	workers    int
	splitPunct bool
	normalize  bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	def := config.Default()
	fs.StringVar(&c.configPath, "c", "", "YAML configuration file")
	fs.StringVar(&c.train, "train", def.Train, "Tagged training corpus (one word_TAG sentence per line)")
	fs.StringVar(&c.separator, "sep", def.Separator, "Word/tag separator")
	fs.Float64Var(&c.floor, "floor", def.Floor, "Probability of unseen transitions and emissions")
	fs.IntVar(&c.workers, "workers", def.Workers, "Parallel decoders (0 = one per CPU)")
	fs.BoolVar(&c.splitPunct, "split-punct", def.SplitPunct, "Detach punctuation from words in plain text")
	fs.BoolVar(&c.normalize, "normalize", def.Normalize, "Apply Unicode NFC to words")
}

// load reads the config file, if any, and applies the flags set explicitly.
func (c *commonFlags) load(fs *flag.FlagSet, extra func(cfg *config.Config, name string)) (*config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "train":
			cfg.Train = c.train
		case "sep":
			cfg.Separator = c.separator
		case "floor":
			cfg.Floor = c.floor
		case "workers":
			cfg.Workers = c.workers
		case "split-punct":
			cfg.SplitPunct = c.splitPunct
		case "normalize":
			cfg.Normalize = c.normalize
		default:
			if extra != nil {
				extra(cfg, f.Name)
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
