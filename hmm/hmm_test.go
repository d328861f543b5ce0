package hmm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceCorpus = []string{
	"The_DET cat_NOUN sleeps_VERB",
	"A_DET dog_NOUN barks_VERB",
	"The_DET dog_NOUN sleeps_VERB",
	"My_DET dog_NOUN runs_VERB fast_ADV",
	"A_DET cat_NOUN meows_VERB loudly_ADV",
	"Your_DET cat_NOUN runs_VERB",
	"The_DET bird_NOUN sings_VERB sweetly_ADV",
	"A_DET bird_NOUN chirps_VERB",
}

func wrapped(lines []string) [][]string {
	corpus := make([][]string, 0, len(lines))
	for _, line := range lines {
		sent := []string{"<s>_START"}
		sent = append(sent, strings.Fields(line)...)
		sent = append(sent, "<e>_END")
		corpus = append(corpus, sent)
	}
	return corpus
}

func trainReference(t *testing.T) *Store {
	t.Helper()
	store, err := Train(wrapped(referenceCorpus))
	require.NoError(t, err)
	return store
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		raw     string
		want    Token
		wantErr bool
	}{
		{raw: "cat_NOUN", want: Token{Word: "cat", Tag: "NOUN"}},
		{raw: "New_York_NOUN", wantErr: true},
		{raw: "cat_NOUN_VERB", wantErr: true},
		{raw: "cat__NOUN", wantErr: true},
		{raw: "<s>_START", want: Token{Word: "<s>", Tag: TagStart}},
		{raw: "cat", wantErr: true},
		{raw: "_NOUN", wantErr: true},
		{raw: "cat_", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseToken(tt.raw, DefaultSeparator)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrMalformedToken, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseCorpus_LocatesMalformedToken(t *testing.T) {
	_, err := ParseCorpus([][]string{{"a_X"}, {"b_Y", "broken"}}, DefaultSeparator)

	var tokErr *TokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, 1, tokErr.Sentence)
	assert.Equal(t, 1, tokErr.Position)
	assert.Equal(t, "broken", tokErr.Token)
	assert.Contains(t, err.Error(), "sentence 2 token 2")
}

func TestTrain_RejectsExtraSeparator(t *testing.T) {
	store, err := Train([][]string{{"<s>_START", "a_b_NOUN", "<e>_END"}})
	assert.Nil(t, store)

	var tokErr *TokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, 0, tokErr.Sentence)
	assert.Equal(t, 1, tokErr.Position)
	assert.Equal(t, "a_b_NOUN", tokErr.Token)

	// a custom separator frees '_' for use inside words
	store, err = Train([][]string{{"<s>/START", "New_York/NOUN", "<e>/END"}}, WithSeparator('/'))
	require.NoError(t, err)
	assert.Equal(t, 1.0, store.EmissionProb("NOUN", "New_York"))
}

func TestCountCorpus(t *testing.T) {
	sentences, err := ParseCorpus(wrapped(referenceCorpus), DefaultSeparator)
	require.NoError(t, err)

	counts := CountCorpus(sentences)

	assert.Equal(t, map[string]int{
		TagStart: 8, TagEnd: 8, "DET": 8, "NOUN": 8, "VERB": 8, "ADV": 3,
	}, counts.Tags)
	assert.Equal(t, 3, counts.Words["The"])
	assert.Equal(t, 3, counts.Words["cat"])
	assert.NotContains(t, counts.Words, "<s>")
	assert.NotContains(t, counts.Words, "<e>")
}

func TestCountCorpus_Empty(t *testing.T) {
	counts := CountCorpus(nil)
	assert.NotNil(t, counts.Words)
	assert.NotNil(t, counts.Tags)
	assert.Empty(t, counts.Words)
	assert.Empty(t, counts.Tags)
}

func TestEstimate(t *testing.T) {
	store := trainReference(t)

	assert.Equal(t, 1.0, store.TransitionProb(TagStart, "DET"))
	assert.Equal(t, 1.0, store.TransitionProb("DET", "NOUN"))
	assert.Equal(t, 5.0/8.0, store.TransitionProb("VERB", TagEnd))
	assert.Equal(t, 3.0/8.0, store.TransitionProb("VERB", "ADV"))
	assert.Equal(t, 1.0, store.TransitionProb("ADV", TagEnd))

	assert.Equal(t, 3.0/8.0, store.EmissionProb("DET", "The"))
	assert.Equal(t, 2.0/8.0, store.EmissionProb("NOUN", "bird"))
	assert.Equal(t, 1.0/3.0, store.EmissionProb("ADV", "fast"))

	for _, tr := range store.Tables().Transitions {
		assert.NotEqual(t, TagEnd, tr.From)
	}
	for _, em := range store.Tables().Emissions {
		assert.False(t, IsSentinel(em.Tag), em.Tag)
	}
}

func TestEstimate_UsesTotalTagCount(t *testing.T) {
	// X occurs twice, once without a successor: p(Y|X) is 1/2, not 1/1.
	store, err := Train([][]string{{"a_X", "b_Y", "c_X"}})
	require.NoError(t, err)

	assert.Equal(t, 0.5, store.TransitionProb("X", "Y"))
	_, ok := store.LookupTransition("Y", TagEnd)
	assert.False(t, ok)
}

func TestEmissionsSumToOne(t *testing.T) {
	store := trainReference(t)

	sums := make(map[string]float64)
	for _, em := range store.Tables().Emissions {
		sums[em.Tag] += em.Prob
	}
	require.Len(t, sums, 4)
	for tag, sum := range sums {
		assert.InDelta(t, 1.0, sum, 1e-9, tag)
	}
}

func TestTrain_Idempotent(t *testing.T) {
	a := trainReference(t)
	b := trainReference(t)

	assert.Equal(t, a.Tables(), b.Tables())
	assert.Equal(t, a.Counts(), b.Counts())
}

func TestTrain_MalformedToken(t *testing.T) {
	corpus := wrapped(referenceCorpus)
	corpus = append(corpus, []string{"<s>_START", "oops", "<e>_END"})

	store, err := Train(corpus)
	assert.Nil(t, store)
	assert.True(t, errors.Is(err, ErrMalformedToken))
}

func TestTrain_Separator(t *testing.T) {
	store, err := Train([][]string{{"<s>/START", "dog/NOUN", "<e>/END"}}, WithSeparator('/'))
	require.NoError(t, err)
	assert.Equal(t, 1.0, store.EmissionProb("NOUN", "dog"))
}

func TestStore_Floor(t *testing.T) {
	store := trainReference(t)

	assert.Equal(t, 1e-6, store.TransitionProb("DET", "VERB"))
	assert.Equal(t, 1e-6, store.TransitionProb("UNKNOWN", "DET"))
	assert.Equal(t, 1e-6, store.EmissionProb("NOUN", "zebra"))
	assert.Equal(t, 1e-6, store.EmissionProb(TagStart, "<s>"))

	_, ok := store.LookupEmission("NOUN", "zebra")
	assert.False(t, ok)
	p, ok := store.LookupEmission("NOUN", "dog")
	assert.True(t, ok)
	assert.Equal(t, 3.0/8.0, p)

	custom := TrainSentences(nil, WithFloor(1e-9))
	assert.Equal(t, 1e-9, custom.TransitionProb("A", "B"))
	assert.Equal(t, 1e-9, custom.Floor())
}

func TestStore_StatesAndVocabulary(t *testing.T) {
	store := trainReference(t)

	assert.Equal(t, []string{"ADV", "DET", "NOUN", "VERB"}, store.States())
	assert.True(t, store.Known("cat"))
	assert.False(t, store.Known("zebra"))
	assert.False(t, store.Known("<s>"))
	assert.Contains(t, store.String(), "tags: 4")
}
