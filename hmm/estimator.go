package hmm

import (
	"sort"
)

// Transition is the probability of moving from one tag to the next.
type Transition struct {
	From string
	To   string
	Prob float64
}

// Emission is the probability of a tag emitting a word.
type Emission struct {
	Tag  string
	Word string
	Prob float64
}

// Tables are the maximum-likelihood parameters of the model.
type Tables struct {
	Transitions []Transition
	Emissions   []Emission
}

// Estimate derives transition and emission probabilities from the corpus.
// Both are plain ratios against the total tag count: no smoothing mass is
// reserved, so a tag's outgoing transitions only sum to one when every
// occurrence has a successor.
func Estimate(sentences []Sentence, tagCounts map[string]int) Tables {
	// bigrams[from][to] = n, emits[tag][word] = n
	bigrams := make(map[string]map[string]int)
	emits := make(map[string]map[string]int)

	for _, sent := range sentences {
		for j, tok := range sent {
			if !IsSentinel(tok.Tag) {
				inc(emits, tok.Tag, tok.Word)
			}
			if j+1 < len(sent) && tok.Tag != TagEnd {
				inc(bigrams, tok.Tag, sent[j+1].Tag)
			}
		}
	}

	var tables Tables
	for _, from := range sortedKeys(bigrams) {
		total := tagCounts[from]
		if total <= 0 {
			continue
		}
		for _, to := range sortedKeys(bigrams[from]) {
			tables.Transitions = append(tables.Transitions, Transition{
				From: from,
				To:   to,
				Prob: float64(bigrams[from][to]) / float64(total),
			})
		}
	}
	for _, tag := range sortedKeys(emits) {
		total := tagCounts[tag]
		if total <= 0 {
			continue
		}
		for _, word := range sortedKeys(emits[tag]) {
			tables.Emissions = append(tables.Emissions, Emission{
				Tag:  tag,
				Word: word,
				Prob: float64(emits[tag][word]) / float64(total),
			})
		}
	}
	return tables
}

func inc(m map[string]map[string]int, a, b string) {
	if m[a] == nil {
		m[a] = make(map[string]int)
	}
	m[a][b]++
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
