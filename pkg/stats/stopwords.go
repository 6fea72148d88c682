package stats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StopWords is a set of lower-case words ignored by the word counter.
// The zero value is an empty set.
type StopWords map[string]struct{}

// NewStopWords builds a set from words.
func NewStopWords(words ...string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		s.add(w)
	}
	return s
}

// LoadStopWords reads one word per line. Blank lines are skipped.
func LoadStopWords(r io.Reader) (StopWords, error) {
	s := make(StopWords)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stop words: %w", err)
	}
	return s, nil
}

// LoadStopWordsFile reads a stop-word list from path.
func LoadStopWordsFile(path string) (StopWords, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening stop words file: %w", err)
	}
	defer f.Close()

	s, err := LoadStopWords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s StopWords) add(w string) {
	w = strings.ToLower(strings.TrimSpace(w))
	if w != "" {
		s[w] = struct{}{}
	}
}

// Contains reports whether w is a stop word. w must already be lower case.
func (s StopWords) Contains(w string) bool {
	_, ok := s[w]
	return ok
}
