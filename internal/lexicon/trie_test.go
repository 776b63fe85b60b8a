package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrie_InsertLookup(t *testing.T) {
	trie := NewTrie()
	words := []string{"cat", "catalog", "Cat", "well-known", "New York", "O'Brien", "c"}
	for _, w := range words {
		require.NoError(t, trie.Insert(w))
	}

	for _, w := range words {
		assert.True(t, trie.Lookup(w), "inserted word %q should be found", w)
	}

	tests := []struct {
		word string
		want bool
	}{
		{"ca", false},      // prefix only
		{"cats", false},    // extends past a word
		{"CAT", false},     // case is literal
		{"catalo", false},  // interior node
		{"", false},        // empty never matches
		{"caf\xc3\xa9", false},
		{"cat\n", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, trie.Lookup(tt.word), "Lookup(%q)", tt.word)
	}
}

func TestTrie_InsertIdempotent(t *testing.T) {
	trie := NewTrie()
	require.NoError(t, trie.Insert("hello"))
	nodes := trie.Nodes()

	require.NoError(t, trie.Insert("hello"))
	assert.Equal(t, 1, trie.Len())
	assert.Equal(t, nodes, trie.Nodes())
}

func TestTrie_RejectsOutOfAlphabet(t *testing.T) {
	trie := NewTrie()

	err := trie.Insert("na\xefve")
	require.ErrorIs(t, err, ErrOutOfAlphabet)
	assert.Contains(t, err.Error(), "offset 2")

	err = trie.Insert("tab\there")
	require.ErrorIs(t, err, ErrOutOfAlphabet)

	// Nothing was allocated for rejected words
	assert.Equal(t, 1, trie.Nodes())
	assert.Equal(t, 0, trie.Len())
	assert.False(t, trie.Lookup("na"))
}

func TestTrie_RejectsEmpty(t *testing.T) {
	trie := NewTrie()
	assert.ErrorIs(t, trie.Insert(""), ErrEmptyWord)
}

func TestTrie_SharedPrefixes(t *testing.T) {
	trie := NewTrie()
	require.NoError(t, trie.Insert("abc"))
	require.NoError(t, trie.Insert("abd"))
	require.NoError(t, trie.Insert("ab"))

	// root + a + b + c + d
	assert.Equal(t, 5, trie.Nodes())
	assert.Equal(t, 3, trie.Len())
	assert.True(t, trie.Lookup("ab"))
	assert.False(t, trie.Lookup("a"))
}

func TestTrie_FullAlphabet(t *testing.T) {
	trie := NewTrie()
	var all []byte
	for c := MinChar; c <= MaxChar; c++ {
		all = append(all, c)
		require.NoError(t, trie.Insert(string(c)))
	}
	require.NoError(t, trie.Insert(string(all)))

	for c := MinChar; c <= MaxChar; c++ {
		assert.True(t, trie.Lookup(string(c)))
	}
	assert.True(t, trie.Lookup(string(all)))
	assert.False(t, trie.Lookup(string([]byte{MaxChar + 1})))
	assert.False(t, trie.Lookup(string([]byte{MinChar - 1})))
}
