package worker

import (
	"context"
	"errors"

	"github.com/ppiankov/spchk/internal/discover"
	"github.com/ppiankov/spchk/internal/model"
	"github.com/ppiankov/spchk/internal/pipeline"
)

// FileChecker defines the interface for checking one file
type FileChecker interface {
	CheckFile(ctx context.Context, index int, path string) *pipeline.FileResult
}

// FileJob represents a file check job
type FileJob struct {
	Index   int
	Target  discover.Target
	Checker FileChecker
	Limiter *Limiter
}

// Execute executes the file check job
func (j *FileJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Target.Root); err != nil {
			return failedResult(j.Index, j.Target.Path, "throttle", err)
		}
	}
	return j.Checker.CheckFile(ctx, j.Index, j.Target.Path)
}

// BatchProcessor checks many files concurrently against one shared checker
type BatchProcessor struct {
	checker     FileChecker
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor. limiter may be nil
func NewBatchProcessor(checker FileChecker, concurrency int, limiter *Limiter) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessFiles checks every target and passes each result to emit in
// target order, whatever order the workers finish in. emit runs on the
// calling goroutine. A target left unchecked because ctx ended is emitted
// as a failed result
func (b *BatchProcessor) ProcessFiles(ctx context.Context, targets []discover.Target, emit func(*pipeline.FileResult)) {
	if len(targets) == 0 {
		return
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	// Submit from a separate goroutine so results can drain while jobs queue
	go func() {
		defer pool.Close()
		for i, target := range targets {
			pool.Submit(&FileJob{
				Index:   i,
				Target:  target,
				Checker: b.checker,
				Limiter: b.limiter,
			})
		}
	}()

	pending := make(map[int]*pipeline.FileResult)
	next := 0
	for result := range pool.Results() {
		fr := result.(*pipeline.FileResult)
		pending[fr.Index] = fr

		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			emit(ready)
			next++
		}
	}

	for ; next < len(targets); next++ {
		if ready, ok := pending[next]; ok {
			emit(ready)
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = errors.New("file was not checked")
		}
		emit(failedResult(next, targets[next].Path, "check", err))
	}
}

func failedResult(index int, path, op string, err error) *pipeline.FileResult {
	result := &pipeline.FileResult{Index: index, Path: path, Dirty: true}
	result.Failure(model.NewPathFailure(path, op, err))
	return result
}
