package tagger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/teatak/postag/hmm"
)

// TagStats counts per-tag agreement between gold and predicted tags.
type TagStats struct {
	Gold      int
	Predicted int
	Correct   int
}

// Precision of the predictions of this tag.
func (s TagStats) Precision() float64 {
	return ratio(s.Correct, s.Predicted)
}

// Recall of the gold occurrences of this tag.
func (s TagStats) Recall() float64 {
	return ratio(s.Correct, s.Gold)
}

// Report summarises tagging accuracy against a gold corpus.
type Report struct {
	Sentences        int
	SentencesCorrect int
	Tokens           int
	Correct          int
	OOVTokens        int
	OOVCorrect       int
	PerTag           map[string]*TagStats
}

// Accuracy is the fraction of correctly tagged tokens.
func (r *Report) Accuracy() float64 {
	return ratio(r.Correct, r.Tokens)
}

// SentenceAccuracy is the fraction of sentences tagged without a mistake.
func (r *Report) SentenceAccuracy() float64 {
	return ratio(r.SentencesCorrect, r.Sentences)
}

// OOVAccuracy is the accuracy on words unseen in training.
func (r *Report) OOVAccuracy() float64 {
	return ratio(r.OOVCorrect, r.OOVTokens)
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tokens:    %d/%d (%.2f%%)\n", r.Correct, r.Tokens, r.Accuracy()*100)
	fmt.Fprintf(&b, "Sentences: %d/%d (%.2f%%)\n", r.SentencesCorrect, r.Sentences, r.SentenceAccuracy()*100)
	fmt.Fprintf(&b, "OOV:       %d/%d (%.2f%%)\n", r.OOVCorrect, r.OOVTokens, r.OOVAccuracy()*100)

	tags := make([]string, 0, len(r.PerTag))
	for tag := range r.PerTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		s := r.PerTag[tag]
		fmt.Fprintf(&b, "  %-8s P %.2f R %.2f (gold %d)\n", tag, s.Precision(), s.Recall(), s.Gold)
	}
	return b.String()
}

// Evaluate tags the words of every gold sentence and compares the result.
// Empty sentences are skipped.
func (t *Tagger) Evaluate(ctx context.Context, gold []hmm.Sentence, workers int) (*Report, error) {
	var sents []hmm.Sentence
	var inputs [][]string
	for _, s := range gold {
		if len(s) == 0 {
			continue
		}
		sents = append(sents, s)
		inputs = append(inputs, s.Words())
	}

	predicted, err := t.TagAll(ctx, inputs, workers)
	if err != nil {
		return nil, err
	}

	r := &Report{PerTag: make(map[string]*TagStats)}
	stats := func(tag string) *TagStats {
		if r.PerTag[tag] == nil {
			r.PerTag[tag] = &TagStats{}
		}
		return r.PerTag[tag]
	}

	for i, sent := range sents {
		r.Sentences++
		allCorrect := true
		for j, tok := range sent {
			pred := predicted[i][j].Tag
			oov := !t.Store.Known(tok.Word)
			r.Tokens++
			stats(tok.Tag).Gold++
			stats(pred).Predicted++
			if oov {
				r.OOVTokens++
			}
			if pred == tok.Tag {
				r.Correct++
				stats(tok.Tag).Correct++
				if oov {
					r.OOVCorrect++
				}
			} else {
				allCorrect = false
			}
		}
		if allCorrect {
			r.SentencesCorrect++
		}
	}
	return r, nil
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
