package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/teatak/postag/hmm"
	"github.com/teatak/postag/util"
)

// Default sentinel words wrapped around every training sentence.
const (
	DefaultStartWord = "<s>"
	DefaultEndWord   = "<e>"
)

const maxLineSize = 1024 * 1024

// Reader reads one-sentence-per-line corpora.
type Reader struct {
	// Separator joins word and tag in tagged files.
	Separator rune
	// StartWord and EndWord are the sentinel words tagged START and END.
	StartWord string
	EndWord   string
	// Normalize applies Unicode NFC to words.
	Normalize bool
	// SplitPunct detaches punctuation from words in plain text.
	SplitPunct bool
}

// NewReader creates a reader with the default separator and sentinels.
func NewReader() *Reader {
	return &Reader{
		Separator: hmm.DefaultSeparator,
		StartWord: DefaultStartWord,
		EndWord:   DefaultEndWord,
		Normalize: true,
	}
}

// LoadTagged loads a tagged corpus file.
func (r *Reader) LoadTagged(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return r.ReadTagged(file)
}

// ReadTagged reads "word_tag" sentences and wraps each in START/END sentinel tokens.
// Tokens are returned raw; hmm.Train reports malformed ones.
func (r *Reader) ReadTagged(in io.Reader) ([][]string, error) {
	var data [][]string
	err := r.scan(in, func(_ int, line string) error {
		fields := strings.Fields(line)
		if r.Normalize {
			for i, f := range fields {
				fields[i] = r.normalizeTagged(f)
			}
		}
		data = append(data, r.Wrap(fields))
		return nil
	})
	return data, err
}

// LoadGold loads a tagged file as parsed sentences, without sentinels.
func (r *Reader) LoadGold(path string) ([]hmm.Sentence, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return r.ReadGold(file)
}

// ReadGold reads tagged sentences for evaluation. A malformed token is
// reported with its 1-based file line wrapped around a *hmm.TokenError whose
// Sentence counts only the sentences read so far.
func (r *Reader) ReadGold(in io.Reader) ([]hmm.Sentence, error) {
	var data []hmm.Sentence
	n := 0
	err := r.scan(in, func(lineNo int, line string) error {
		var sent hmm.Sentence
		for j, f := range strings.Fields(line) {
			tok, err := hmm.ParseToken(f, r.Separator)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, &hmm.TokenError{Sentence: n, Position: j, Token: f})
			}
			tok.Word = r.normalize(tok.Word)
			sent = append(sent, tok)
		}
		data = append(data, sent)
		n++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// LoadPlain loads a plain text file, one sentence per line.
func (r *Reader) LoadPlain(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return r.ReadPlain(file)
}

// ReadPlain reads plain sentences as token lists.
func (r *Reader) ReadPlain(in io.Reader) ([][]string, error) {
	var data [][]string
	err := r.scan(in, func(_ int, line string) error {
		data = append(data, r.Tokens(line))
		return nil
	})
	return data, err
}

// Tokens splits one plain sentence into normalized words.
func (r *Reader) Tokens(text string) []string {
	tokens := util.Tokenize(text, r.SplitPunct)
	for i, t := range tokens {
		tokens[i] = r.normalize(t)
	}
	return tokens
}

// Wrap brackets raw tagged tokens with START and END sentinel tokens.
func (r *Reader) Wrap(tokens []string) []string {
	sep := string(r.Separator)
	out := make([]string, 0, len(tokens)+2)
	out = append(out, r.StartWord+sep+hmm.TagStart)
	out = append(out, tokens...)
	return append(out, r.EndWord+sep+hmm.TagEnd)
}

// Format joins words and tags back into a tagged line ("The_DET cat_NOUN").
func (r *Reader) Format(tokens []hmm.Token) string {
	sep := string(r.Separator)
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Word + sep + tok.Tag
	}
	return strings.Join(parts, " ")
}

// scan calls fn for every non-empty, non-comment line with its 1-based line number.
func (r *Reader) scan(in io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(in)
	buf := make([]byte, maxLineSize)
	scanner.Buffer(buf, maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (r *Reader) normalize(word string) string {
	if !r.Normalize {
		return word
	}
	return norm.NFC.String(word)
}

// normalizeTagged normalizes only the word part, leaving malformed tokens untouched.
func (r *Reader) normalizeTagged(raw string) string {
	tok, err := hmm.ParseToken(raw, r.Separator)
	if err != nil {
		return raw
	}
	return r.normalize(tok.Word) + string(r.Separator) + tok.Tag
}
