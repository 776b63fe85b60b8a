package pipeline

import "errors"

// ErrNotClean is returned by a run that found a misspelled word or an
// inaccessible path. Callers map it to a failing exit status
var ErrNotClean = errors.New("misspelled words or inaccessible paths found")

// FileResult is the buffered outcome of checking one file
type FileResult struct {
	Recorder

	Index int    // position in the discovered file order
	Path  string // file path as reported
	Dirty bool   // at least one miss or failure
}

// GetError returns the first path failure, if any
func (r *FileResult) GetError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Failures) == 0 {
		return nil
	}
	return r.Failures[0].Err
}

// Tally folds per-path outcomes into the run result. A run is clean only
// when every path was accessible and no word was misspelled
type Tally struct {
	Files    int
	Misses   int
	Failures int
	dirty    bool
}

// AddFile folds in a checked file
func (t *Tally) AddFile(r *FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.Files++
	t.Misses += len(r.Misses)
	t.Failures += len(r.Failures)
	t.dirty = t.dirty || r.Dirty
}

// AddFailure folds in a path that never reached the checker
func (t *Tally) AddFailure() {
	t.Failures++
	t.dirty = true
}

// Clean reports whether the run found nothing to complain about
func (t *Tally) Clean() bool {
	return !t.dirty
}

// Err returns ErrNotClean unless the run was clean
func (t *Tally) Err() error {
	if t.Clean() {
		return nil
	}
	return ErrNotClean
}
