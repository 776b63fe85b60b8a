// Package pipeline runs the spell check over lines and files: tokenize,
// match, report
package pipeline

import (
	"context"

	"github.com/ppiankov/spchk/internal/match"
	"github.com/ppiankov/spchk/internal/model"
	"github.com/ppiankov/spchk/internal/tokenize"
)

// Checker checks lines and files against a matcher. It holds no per-run
// state, so one Checker can serve many files and goroutines
type Checker struct {
	matcher *match.Matcher
	source  *Source
}

// NewChecker creates a checker reading files through source
func NewChecker(m *match.Matcher, source *Source) *Checker {
	return &Checker{matcher: m, source: source}
}

// ProcessLine reports every misspelled token of line and returns true if
// there was at least one. Columns are those of the raw token, before
// punctuation trimming
func (c *Checker) ProcessLine(path string, line string, lineNo int, sink Sink) bool {
	found := false
	for tok := range tokenize.Tokens(line) {
		if c.matcher.Match(tok.Text) {
			continue
		}
		found = true
		sink.Miss(model.Miss{
			Path:   path,
			Line:   lineNo,
			Column: tok.Column,
			Word:   reportedWord(tok.Text),
		})
	}
	return found
}

// ProcessFile checks every line of the file at path. It returns true if a
// word was misspelled or the file could not be opened or read; the latter
// is also passed to sink as a failure
func (c *Checker) ProcessFile(ctx context.Context, path string, sink Sink) bool {
	if err := ctx.Err(); err != nil {
		sink.Failure(model.NewPathFailure(path, "check", err))
		return true
	}

	f, r, err := c.source.Open(path)
	if err != nil {
		sink.Failure(model.NewPathFailure(path, "open", err))
		return true
	}
	defer func() { _ = f.Close() }()

	found := false
	err = EachLine(r, func(lineNo int, line string) bool {
		if c.ProcessLine(path, line, lineNo, sink) {
			found = true
		}
		return true
	})
	if err != nil {
		sink.Failure(model.NewPathFailure(path, "read", err))
		return true
	}
	return found
}

// CheckFile runs ProcessFile into a buffer so results from concurrent
// workers can be emitted in a fixed order
func (c *Checker) CheckFile(ctx context.Context, index int, path string) *FileResult {
	result := &FileResult{Index: index, Path: path}
	result.Dirty = c.ProcessFile(ctx, path, &result.Recorder)
	return result
}

// reportedWord is the trimmed token, or the raw token when trimming leaves
// nothing to show
func reportedWord(raw string) string {
	if trimmed := match.Trim(raw); trimmed != "" {
		return trimmed
	}
	return raw
}
