package match

import "github.com/ppiankov/spchk/internal/lexicon"

// CaseClass selects which case rules apply to a token
type CaseClass int

const (
	// Exact tokens only match verbatim
	Exact CaseClass = iota
	// AllUpper tokens have at least one letter and no lowercase letter
	AllUpper
	// Capitalized tokens start with an uppercase letter and have no
	// uppercase letter after it
	Capitalized
)

func (c CaseClass) String() string {
	switch c {
	case AllUpper:
		return "all-upper"
	case Capitalized:
		return "capitalized"
	default:
		return "exact"
	}
}

// Classify derives the case class of token from its ASCII letters.
// Non-letters are ignored, except that Capitalized needs a letter at
// position 0
func Classify(token string) CaseClass {
	var letters, upper, upperAfterFirst int
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case isUpper(c):
			letters++
			upper++
			if i > 0 {
				upperAfterFirst++
			}
		case isLower(c):
			letters++
		}
	}

	switch {
	case letters > 0 && upper == letters:
		return AllUpper
	case len(token) > 0 && isUpper(token[0]) && upperAfterFirst == 0:
		return Capitalized
	default:
		return Exact
	}
}

// MatchCase decides a single token with no decomposition. The exact rule
// always runs first; the case class then grants at most one more lookup:
// AllUpper retries the folded tree with the token lower-cased, Capitalized
// retries the exact tree with the token lower-cased
func (m *Matcher) MatchCase(token string) bool {
	if m.lex.Exact(token) {
		return true
	}

	switch Classify(token) {
	case AllUpper:
		return m.lex.Folded(lexicon.Fold(token))
	case Capitalized:
		return m.lex.Exact(lexicon.Fold(token))
	}
	return false
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
