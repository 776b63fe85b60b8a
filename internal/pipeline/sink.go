package pipeline

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/ppiankov/spchk/internal/logger"
	"github.com/ppiankov/spchk/internal/model"
)

// Sink receives the outcome of checking: misses as data, path failures as
// diagnostics
type Sink interface {
	Miss(m model.Miss)
	Failure(f model.PathFailure)
}

// TextSink writes one "<path> (<line>:<column>): <word>" line per miss to
// its writer and routes failures to the logger
type TextSink struct {
	mu    sync.Mutex
	w     io.Writer
	log   *logger.ConsoleLogger
	color bool
	word  *color.Color
}

// NewTextSink creates a TextSink. With colorize set, the word is highlighted;
// the line shape is unchanged
func NewTextSink(w io.Writer, log *logger.ConsoleLogger, colorize bool) *TextSink {
	word := color.New(color.FgRed, color.Bold)
	if colorize {
		word.EnableColor()
	}
	return &TextSink{w: w, log: log, color: colorize, word: word}
}

// Miss writes a report line
func (s *TextSink) Miss(m model.Miss) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.color {
		m.Word = s.word.Sprint(m.Word)
	}
	_, _ = fmt.Fprintln(s.w, m.String())
}

// Failure logs an inaccessible path
func (s *TextSink) Failure(f model.PathFailure) {
	s.log.Errorf("%s", f)
}

// Recorder buffers everything it receives. It is used per file by the
// workers and for the JSON report
type Recorder struct {
	mu       sync.Mutex
	Misses   []model.Miss
	Failures []model.PathFailure
}

// Miss records m
func (r *Recorder) Miss(m model.Miss) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Misses = append(r.Misses, m)
}

// Failure records f
func (r *Recorder) Failure(f model.PathFailure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, f)
}

// Replay forwards everything recorded, misses first, to s
func (r *Recorder) Replay(s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.Misses {
		s.Miss(m)
	}
	for _, f := range r.Failures {
		s.Failure(f)
	}
}

// Tee fans out to several sinks in order
type Tee []Sink

// Miss forwards m to every sink
func (t Tee) Miss(m model.Miss) {
	for _, s := range t {
		s.Miss(m)
	}
}

// Failure forwards f to every sink
func (t Tee) Failure(f model.PathFailure) {
	for _, s := range t {
		s.Failure(f)
	}
}
