// Package tokenize carves a line of text into candidate words, each tagged
// with the 1-based column of its first character
package tokenize

import "iter"

// Token is a candidate word and the column it starts at
type Token struct {
	Text   string
	Column int
}

// Tokens yields the tokens of line in order
//
// A token starts on an ASCII letter or a hyphen; any other character seen
// outside a token (leading quotes and brackets, digits, other punctuation,
// non-ASCII) is skipped. Once started, a token runs until whitespace or the
// end of the line, so trailing punctuation stays attached for the trimmer.
// Columns count runes, including skipped ones
func Tokens(line string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		var (
			open     bool
			start    int
			startCol int
			col      int
		)
		for i, r := range line {
			col++
			switch {
			case isSpace(r):
				if open {
					open = false
					if !yield(Token{Text: line[start:i], Column: startCol}) {
						return
					}
				}
			case open:
			case startsToken(r):
				open, start, startCol = true, i, col
			}
		}
		if open {
			yield(Token{Text: line[start:], Column: startCol})
		}
	}
}

func startsToken(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
