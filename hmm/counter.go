package hmm

// Counts holds corpus-wide word and tag frequencies.
type Counts struct {
	// Words[word] = occurrences, sentinel tokens excluded.
	Words map[string]int
	// Tags[tag] = occurrences, sentinels included.
	Tags map[string]int
}

// CountCorpus scans the tagged sentences and counts words and tags.
func CountCorpus(sentences []Sentence) Counts {
	counts := Counts{
		Words: make(map[string]int),
		Tags:  make(map[string]int),
	}
	for _, sent := range sentences {
		for _, tok := range sent {
			counts.Tags[tok.Tag]++
			if !IsSentinel(tok.Tag) {
				counts.Words[tok.Word]++
			}
		}
	}
	return counts
}
