package hmm

import (
	"strings"
)

// Sentinel tags bracketing every training sentence.
const (
	TagStart = "START"
	TagEnd   = "END"
)

// DefaultSeparator joins a word and its tag in training data ("cat_NOUN").
const DefaultSeparator = '_'

// Token is a word paired with its tag.
type Token struct {
	Word string
	Tag  string
}

// String renders the token as word_tag.
func (t Token) String() string {
	return t.Word + string(DefaultSeparator) + t.Tag
}

// Sentence is an ordered sequence of tagged tokens.
type Sentence []Token

// Words returns the words of the sentence in order.
func (s Sentence) Words() []string {
	words := make([]string, len(s))
	for i, tok := range s {
		words[i] = tok.Word
	}
	return words
}

// Tags returns the tags of the sentence in order.
func (s Sentence) Tags() []string {
	tags := make([]string, len(s))
	for i, tok := range s {
		tags[i] = tok.Tag
	}
	return tags
}

// IsSentinel reports whether tag is START or END.
func IsSentinel(tag string) bool {
	return tag == TagStart || tag == TagEnd
}

// ParseToken splits raw into a word and a tag. The token must contain the
// separator exactly once with a non-empty part on each side.
func ParseToken(raw string, sep rune) (Token, error) {
	s := string(sep)
	if strings.Count(raw, s) != 1 {
		return Token{}, &TokenError{Sentence: -1, Position: -1, Token: raw}
	}
	word, tag, _ := strings.Cut(raw, s)
	if word == "" || tag == "" {
		return Token{}, &TokenError{Sentence: -1, Position: -1, Token: raw}
	}
	return Token{Word: word, Tag: tag}, nil
}

// ParseCorpus parses every raw token of every sentence. Parsing stops at the
// first malformed token.
func ParseCorpus(corpus [][]string, sep rune) ([]Sentence, error) {
	sentences := make([]Sentence, 0, len(corpus))
	for i, raw := range corpus {
		sent := make(Sentence, 0, len(raw))
		for j, field := range raw {
			tok, err := ParseToken(field, sep)
			if err != nil {
				return nil, &TokenError{Sentence: i, Position: j, Token: field}
			}
			sent = append(sent, tok)
		}
		sentences = append(sentences, sent)
	}
	return sentences, nil
}
