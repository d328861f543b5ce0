package hmm

// Train builds a store from raw "word_tag" sentences. Each sentence must
// already be bracketed by START and END sentinel tokens.
// The whole corpus is parsed before anything is counted, so a malformed
// token leaves no partially trained state behind.
func Train(corpus [][]string, opts ...Option) (*Store, error) {
	o := newOptions(opts)
	sentences, err := ParseCorpus(corpus, o.sep)
	if err != nil {
		return nil, err
	}
	return TrainSentences(sentences, opts...), nil
}

// TrainSentences builds a store from already parsed sentences.
func TrainSentences(sentences []Sentence, opts ...Option) *Store {
	counts := CountCorpus(sentences)
	tables := Estimate(sentences, counts.Tags)
	return NewStore(tables, counts, opts...)
}
