package model

import (
	"fmt"
	"time"
)

// Miss is a token that failed every matching rule
type Miss struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`   // 1-based
	Column int    `json:"column"` // 1-based column of the token's first character, before trimming
	Word   string `json:"word"`
}

// String renders the miss in the report line format
func (m Miss) String() string {
	return fmt.Sprintf("%s (%d:%d): %s", m.Path, m.Line, m.Column, m.Word)
}

// PathFailure records a path that could not be stat'ed, opened or read.
// It counts against the run like a miss but is reported as a diagnostic
type PathFailure struct {
	Path  string `json:"path"`
	Op    string `json:"op"` // stat, open, read, readdir
	Err   error  `json:"-"`
	Error string `json:"error"`
}

// NewPathFailure builds a PathFailure for op on path
func NewPathFailure(path, op string, err error) PathFailure {
	return PathFailure{Path: path, Op: op, Err: err, Error: err.Error()}
}

// String renders the failure for diagnostics
func (f PathFailure) String() string {
	return fmt.Sprintf("failed to %s %s: %v", f.Op, f.Path, f.Err)
}

// Report is the machine-readable summary of a run
type Report struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Dictionary  string         `json:"dictionary"`
	Lexicon     LexiconSummary `json:"lexicon"`
	Paths       []string       `json:"paths"`
	Totals      Totals         `json:"totals"`
	Misses      []Miss         `json:"misses"`
	Failures    []PathFailure  `json:"failures"`
	Clean       bool           `json:"clean"`
}

// LexiconSummary mirrors the dictionary counters in the report
type LexiconSummary struct {
	Entries  int `json:"entries"`
	Rejected int `json:"rejected"`
	Nodes    int `json:"nodes"`
}

// Totals counts what a run processed
type Totals struct {
	Files    int `json:"files"`
	Misses   int `json:"misses"`
	Failures int `json:"failures"`
}
