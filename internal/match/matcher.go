// Package match decides whether a token is spelled correctly against a
// lexicon, applying punctuation trimming, compound decomposition and the
// case rules in that order
package match

import "github.com/ppiankov/spchk/internal/lexicon"

// Verdicts memoizes match results by raw token. Implementations must be
// safe for concurrent use
type Verdicts interface {
	Get(token string) (correct bool, found bool)
	Set(token string, correct bool)
}

// Matcher checks tokens against a read-only lexicon
type Matcher struct {
	lex   *lexicon.Lexicon
	cache Verdicts
}

// Option configures a Matcher
type Option func(*Matcher)

// WithCache memoizes verdicts in c
func WithCache(c Verdicts) Option {
	return func(m *Matcher) {
		m.cache = c
	}
}

// NewMatcher creates a matcher over lex
func NewMatcher(lex *lexicon.Lexicon, opts ...Option) *Matcher {
	m := &Matcher{lex: lex}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match runs the full check on a raw token: trim, then compound
// decomposition, then the case rules on the whole trimmed token
func (m *Matcher) Match(token string) bool {
	if m.cache != nil {
		if correct, found := m.cache.Get(token); found {
			return correct
		}
	}

	correct := m.match(token)

	if m.cache != nil {
		m.cache.Set(token, correct)
	}
	return correct
}

func (m *Matcher) match(token string) bool {
	trimmed := Trim(token)
	if trimmed == "" {
		return false
	}
	if m.Resolve(trimmed) {
		return true
	}
	return m.MatchCase(trimmed)
}
