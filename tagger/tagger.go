package tagger

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/teatak/postag/corpus"
	"github.com/teatak/postag/hmm"
)

// Tagger assigns part-of-speech tags to plain sentences.
type Tagger struct {
	Store  *hmm.Store
	Reader *corpus.Reader
}

// NewTagger creates a tagger over a trained store. A nil reader uses corpus defaults.
func NewTagger(store *hmm.Store, reader *corpus.Reader) *Tagger {
	if reader == nil {
		reader = corpus.NewReader()
	}
	return &Tagger{Store: store, Reader: reader}
}

// Tag decodes one tokenized sentence.
func (t *Tagger) Tag(words []string) ([]hmm.Token, error) {
	tags, err := t.Store.Decode(words)
	if err != nil {
		return nil, err
	}
	tokens := make([]hmm.Token, len(words))
	for i, w := range words {
		tokens[i] = hmm.Token{Word: w, Tag: tags[i]}
	}
	return tokens, nil
}

// TagText tokenizes a raw sentence and decodes it.
func (t *Tagger) TagText(text string) ([]hmm.Token, error) {
	return t.Tag(t.Reader.Tokens(text))
}

// TagAll decodes independent sentences on up to workers goroutines.
// Results keep the input order. The first failure cancels the rest.
func (t *Tagger) TagAll(ctx context.Context, sentences [][]string, workers int) ([][]hmm.Token, error) {
	results := make([][]hmm.Token, len(sentences))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, words := range sentences {
		i, words := i, words
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tokens, err := t.Tag(words)
			if err != nil {
				return fmt.Errorf("sentence %d: %w", i+1, err)
			}
			results[i] = tokens
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// OOV returns the words the model never saw in training, in order.
func (t *Tagger) OOV(words []string) []string {
	var oov []string
	for _, w := range words {
		if !t.Store.Known(w) {
			oov = append(oov, w)
		}
	}
	return oov
}
