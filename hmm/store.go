package hmm

import (
	"fmt"
)

// FloorProb is returned for any transition or emission never seen in training.
const FloorProb = 1e-6

// Store answers probability queries over trained tables.
// It is immutable once built and safe for concurrent use.
type Store struct {
	// trans[from][to] = p, emit[tag][word] = p
	trans  map[string]map[string]float64
	emit   map[string]map[string]float64
	states []string
	counts Counts
	tables Tables
	floor  float64
}

type options struct {
	floor float64
	sep   rune
}

// Option configures training and the resulting store.
type Option func(*options)

// WithFloor sets the probability returned for unseen pairs.
func WithFloor(p float64) Option {
	return func(o *options) {
		o.floor = p
	}
}

// WithSeparator sets the rune joining word and tag in raw training tokens.
func WithSeparator(sep rune) Option {
	return func(o *options) {
		o.sep = sep
	}
}

func newOptions(opts []Option) options {
	o := options{floor: FloorProb, sep: DefaultSeparator}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewStore builds a store from estimated tables and corpus counts.
func NewStore(tables Tables, counts Counts, opts ...Option) *Store {
	o := newOptions(opts)
	s := &Store{
		trans:  make(map[string]map[string]float64),
		emit:   make(map[string]map[string]float64),
		counts: counts,
		tables: tables,
		floor:  o.floor,
	}
	for _, t := range tables.Transitions {
		set(s.trans, t.From, t.To, t.Prob)
	}
	for _, e := range tables.Emissions {
		set(s.emit, e.Tag, e.Word, e.Prob)
	}
	for _, tag := range sortedKeys(counts.Tags) {
		if !IsSentinel(tag) {
			s.states = append(s.states, tag)
		}
	}
	return s
}

func set(m map[string]map[string]float64, a, b string, p float64) {
	if m[a] == nil {
		m[a] = make(map[string]float64)
	}
	m[a][b] = p
}

func lookup(m map[string]map[string]float64, a, b string, def float64) float64 {
	if p, ok := m[a][b]; ok {
		return p
	}
	return def
}

// TransitionProb returns p(to | from), or the floor if the pair was never observed.
func (s *Store) TransitionProb(from, to string) float64 {
	return lookup(s.trans, from, to, s.floor)
}

// EmissionProb returns p(word | tag), or the floor if the pair was never observed.
func (s *Store) EmissionProb(tag, word string) float64 {
	return lookup(s.emit, tag, word, s.floor)
}

// LookupTransition returns the trained transition probability and whether it exists.
func (s *Store) LookupTransition(from, to string) (float64, bool) {
	p, ok := s.trans[from][to]
	return p, ok
}

// LookupEmission returns the trained emission probability and whether it exists.
func (s *Store) LookupEmission(tag, word string) (float64, bool) {
	p, ok := s.emit[tag][word]
	return p, ok
}

// Floor returns the fallback probability for unseen pairs.
func (s *Store) Floor() float64 {
	return s.floor
}

// States returns the decodable tags (sentinels excluded) in lexicographic order.
func (s *Store) States() []string {
	return append([]string(nil), s.states...)
}

// Known reports whether word occurred in the training corpus.
func (s *Store) Known(word string) bool {
	return s.counts.Words[word] > 0
}

// Counts returns a copy of the corpus counts the store was built from.
func (s *Store) Counts() Counts {
	c := Counts{
		Words: make(map[string]int, len(s.counts.Words)),
		Tags:  make(map[string]int, len(s.counts.Tags)),
	}
	for w, n := range s.counts.Words {
		c.Words[w] = n
	}
	for t, n := range s.counts.Tags {
		c.Tags[t] = n
	}
	return c
}

// Tables returns a copy of the estimated tables.
func (s *Store) Tables() Tables {
	return Tables{
		Transitions: append([]Transition(nil), s.tables.Transitions...),
		Emissions:   append([]Emission(nil), s.tables.Emissions...),
	}
}

// String summarises the store.
func (s *Store) String() string {
	return fmt.Sprintf("hmm.Store{tags: %d, words: %d, transitions: %d, emissions: %d}",
		len(s.states), len(s.counts.Words), len(s.tables.Transitions), len(s.tables.Emissions))
}
