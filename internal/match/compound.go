package match

import "strings"

// Resolve accepts a trimmed token when one of its decompositions matches
// part by part. Splitting on runs of spaces is tried first, then splitting
// on each single hyphen. A false result means neither decomposition
// applies or accepts; the caller still tries the whole token
func (m *Matcher) Resolve(token string) bool {
	if strings.IndexByte(token, ' ') >= 0 {
		parts := strings.FieldsFunc(token, func(r rune) bool { return r == ' ' })
		if m.all(parts) {
			return true
		}
	}

	if strings.IndexByte(token, '-') >= 0 {
		if m.all(strings.Split(token, "-")) {
			return true
		}
	}
	return false
}

// all requires at least one non-empty part and every non-empty part to pass
// full matching
func (m *Matcher) all(parts []string) bool {
	checked := 0
	for _, p := range parts {
		if p == "" {
			continue
		}
		checked++
		if !m.Match(p) {
			return false
		}
	}
	return checked > 0
}
