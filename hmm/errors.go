package hmm

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken is returned when a training token does not split into a word and a tag.
	ErrMalformedToken = errors.New("malformed token")
	// ErrInvalidInput is returned when decoding an empty observation sequence.
	ErrInvalidInput = errors.New("empty observation sequence")
	// ErrUntrained is returned when decoding with a store that has no states.
	ErrUntrained = errors.New("model has no tags to decode with")
)

// TokenError locates a malformed token in the training corpus.
// Sentence and Position are 0-based indexes into the parsed sentences, not
// file lines. Both are -1 when the token was parsed outside a corpus.
type TokenError struct {
	Sentence int
	Position int
	Token    string
}

func (e *TokenError) Error() string {
	if e.Sentence < 0 {
		return fmt.Sprintf("%v: %q", ErrMalformedToken, e.Token)
	}
	return fmt.Sprintf("%v: sentence %d token %d: %q", ErrMalformedToken, e.Sentence+1, e.Position+1, e.Token)
}

func (e *TokenError) Unwrap() error {
	return ErrMalformedToken
}
