package match

import "strings"

// LeadingPunct is the set of characters stripped from the front of a token
const LeadingPunct = `'"({[`

// IsPunct reports whether c is ASCII punctuation
func IsPunct(c byte) bool {
	return (c >= '!' && c <= '/') ||
		(c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') ||
		(c >= '{' && c <= '~')
}

// Trim strips leading characters from LeadingPunct, then trailing
// punctuation of any kind. Trailing trimming never crosses the point reached
// by leading trimming, so an all-punctuation token becomes empty
func Trim(token string) string {
	start := 0
	for start < len(token) && strings.IndexByte(LeadingPunct, token[start]) >= 0 {
		start++
	}

	end := len(token)
	for end > start && IsPunct(token[end-1]) {
		end--
	}
	return token[start:end]
}
