package lexicon

import (
	"errors"
	"fmt"
	"slices"
)

// Alphabet bounds: printable ASCII, space included
const (
	MinChar byte = 0x20
	MaxChar byte = 0x7e
)

var (
	// ErrOutOfAlphabet is returned when a word holds a byte outside the alphabet
	ErrOutOfAlphabet = errors.New("character outside alphabet")
	// ErrEmptyWord is returned when inserting an empty word
	ErrEmptyWord = errors.New("empty word")
)

type edge struct {
	char byte
	next int32
}

type node struct {
	edges []edge // sorted by char
	end   bool
}

// Trie is a prefix tree over the printable ASCII alphabet. Nodes live in an
// arena addressed by index; index 0 is the root and is never a child, so
// every path from the root is acyclic
type Trie struct {
	nodes []node
	words int
}

// NewTrie returns an empty trie
func NewTrie() *Trie {
	return &Trie{nodes: make([]node, 1)}
}

// Insert adds word to the trie. A word holding any byte outside the
// alphabet is rejected before any node is allocated. Inserting a word twice
// is a no-op
func (t *Trie) Insert(word string) error {
	if word == "" {
		return ErrEmptyWord
	}
	if i := invalidIndex(word); i >= 0 {
		return fmt.Errorf("%w: byte 0x%02x at offset %d", ErrOutOfAlphabet, word[i], i)
	}

	cur := int32(0)
	for i := 0; i < len(word); i++ {
		next, ok := t.child(cur, word[i])
		if !ok {
			next = t.addChild(cur, word[i])
		}
		cur = next
	}

	if !t.nodes[cur].end {
		t.nodes[cur].end = true
		t.words++
	}
	return nil
}

// Lookup reports whether the exact byte sequence of word was inserted
func (t *Trie) Lookup(word string) bool {
	if word == "" {
		return false
	}

	cur := int32(0)
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < MinChar || c > MaxChar {
			return false
		}
		next, ok := t.child(cur, c)
		if !ok {
			return false
		}
		cur = next
	}
	return t.nodes[cur].end
}

// Len returns the number of distinct words stored
func (t *Trie) Len() int {
	return t.words
}

// Nodes returns the number of allocated nodes, root included
func (t *Trie) Nodes() int {
	return len(t.nodes)
}

func (t *Trie) child(n int32, c byte) (int32, bool) {
	edges := t.nodes[n].edges
	i, found := slices.BinarySearchFunc(edges, c, compareEdge)
	if !found {
		return 0, false
	}
	return edges[i].next, true
}

func (t *Trie) addChild(n int32, c byte) int32 {
	next := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{})

	edges := t.nodes[n].edges
	i, _ := slices.BinarySearchFunc(edges, c, compareEdge)
	t.nodes[n].edges = slices.Insert(edges, i, edge{char: c, next: next})
	return next
}

func compareEdge(e edge, c byte) int {
	return int(e.char) - int(c)
}

func invalidIndex(word string) int {
	for i := 0; i < len(word); i++ {
		if word[i] < MinChar || word[i] > MaxChar {
			return i
		}
	}
	return -1
}
