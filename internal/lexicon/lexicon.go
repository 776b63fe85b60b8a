// Package lexicon holds the dictionary used for spell checking: two prefix
// trees built once from a word list, one storing entries verbatim and one
// storing them lower-cased
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/spchk/internal/textenc"
)

// Lexicon pairs the exact-case and folded-case tries. It is read-only once
// loaded and safe to share between goroutines
type Lexicon struct {
	exact  *Trie
	folded *Trie
	stats  Stats
}

// Stats summarizes a loaded lexicon
type Stats struct {
	Entries  int `json:"entries" yaml:"entries"`   // word-list records accepted
	Rejected int `json:"rejected" yaml:"rejected"` // records outside the alphabet
	Exact    int `json:"exact" yaml:"exact"`       // distinct words in the exact tree
	Folded   int `json:"folded" yaml:"folded"`     // distinct words in the folded tree
	Nodes    int `json:"nodes" yaml:"nodes"`       // nodes across both trees
}

// New returns an empty lexicon
func New() *Lexicon {
	return &Lexicon{
		exact:  NewTrie(),
		folded: NewTrie(),
	}
}

// Add inserts word verbatim into the exact tree and lower-cased into the
// folded tree. A word outside the alphabet is inserted into neither
func (l *Lexicon) Add(word string) error {
	if err := l.exact.Insert(word); err != nil {
		if errors.Is(err, ErrOutOfAlphabet) {
			l.stats.Rejected++
		}
		return err
	}
	if err := l.folded.Insert(Fold(word)); err != nil {
		// Fold only maps A-Z, so an alphabet-valid word stays valid
		return err
	}
	l.stats.Entries++
	return nil
}

// Exact looks word up verbatim
func (l *Lexicon) Exact(word string) bool {
	return l.exact.Lookup(word)
}

// Folded looks word up in the lower-cased tree. Callers fold word first
func (l *Lexicon) Folded(word string) bool {
	return l.folded.Lookup(word)
}

// Stats returns counters describing the lexicon
func (l *Lexicon) Stats() Stats {
	s := l.stats
	s.Exact = l.exact.Len()
	s.Folded = l.folded.Len()
	s.Nodes = l.exact.Nodes() + l.folded.Nodes()
	return s
}

// LoadOptions controls how a word list is read
type LoadOptions struct {
	// Encoding names the charset of the word list (see textenc)
	Encoding string
	// OnReject is called for each record that could not be inserted
	OnReject func(line int, word string, err error)
}

// LoadFile builds a lexicon from the word list at path
func LoadFile(path string, opts LoadOptions) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer func() { _ = f.Close() }()

	lex, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lex, nil
}

// Load builds a lexicon from r, one word per line. The line terminator
// (LF, optionally preceded by CR) is removed; empty records are skipped
func Load(r io.Reader, opts LoadOptions) (*Lexicon, error) {
	src, err := textenc.NewReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	lex := New()
	br := bufio.NewReader(src)
	for lineNo := 1; ; lineNo++ {
		record, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("read word list: %w", readErr)
		}

		word := strings.TrimSuffix(strings.TrimSuffix(record, "\n"), "\r")
		if word != "" {
			if err := lex.Add(word); err != nil && opts.OnReject != nil {
				opts.OnReject(lineNo, word, err)
			}
		}

		if readErr == io.EOF {
			break
		}
	}
	return lex, nil
}

// Fold lower-cases ASCII letters only; every other byte is kept
func Fold(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			return foldFrom(s, i)
		}
	}
	return s
}

func foldFrom(s string, i int) string {
	b := []byte(s)
	for ; i < len(b); i++ {
		if c := b[i]; c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
