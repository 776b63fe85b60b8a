package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// stubResult implements Result
type stubResult struct {
	id  int
	err error
}

func (r *stubResult) GetError() error {
	return r.err
}

// stubJob implements Job. It sleeps for delay unless the pool context ends
// first, and counts itself in ran
type stubJob struct {
	id    int
	delay time.Duration
	fail  bool
	ran   *atomic.Int32
	busy  *atomic.Int32
	peak  *atomic.Int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.ran != nil {
		j.ran.Add(1)
	}
	if j.busy != nil {
		now := j.busy.Add(1)
		defer j.busy.Add(-1)
		for {
			old := j.peak.Load()
			if now <= old || j.peak.CompareAndSwap(old, now) {
				break
			}
		}
	}
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &stubResult{id: j.id, err: ctx.Err()}
		}
	}
	if j.fail {
		return &stubResult{id: j.id, err: errors.New("job failed")}
	}
	return &stubResult{id: j.id}
}

// runJobs submits jobs from a separate goroutine, closes the pool and
// collects every result
func runJobs(pool *Pool, jobs []Job) []Result {
	go func() {
		defer pool.Close()
		for _, job := range jobs {
			pool.Submit(job)
		}
	}()

	var results []Result
	for r := range pool.Results() {
		results = append(results, r)
	}
	return results
}

func TestNewPoolWithContext_Workers(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: 4, want: 4},
		{in: 0, want: 1},
		{in: -3, want: 1},
	}
	for _, tt := range tests {
		if got := NewPoolWithContext(context.Background(), tt.in).workers; got != tt.want {
			t.Errorf("workers(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPool_RunsEveryJob(t *testing.T) {
	pool := NewPoolWithContext(context.Background(), 3)
	pool.Start()

	var ran atomic.Int32
	jobs := make([]Job, 100)
	for i := range jobs {
		jobs[i] = &stubJob{id: i, ran: &ran}
	}

	// More jobs than both buffers hold, so results must drain while jobs queue
	results := runJobs(pool, jobs)

	if len(results) != len(jobs) {
		t.Errorf("expected %d results, got %d", len(jobs), len(results))
	}
	if ran.Load() != int32(len(jobs)) {
		t.Errorf("expected %d executions, got %d", len(jobs), ran.Load())
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const workers = 4
	pool := NewPoolWithContext(context.Background(), workers)
	pool.Start()

	var busy, peak atomic.Int32
	jobs := make([]Job, 24)
	for i := range jobs {
		jobs[i] = &stubJob{id: i, delay: 5 * time.Millisecond, busy: &busy, peak: &peak}
	}
	runJobs(pool, jobs)

	if peak.Load() > workers {
		t.Errorf("peak concurrency %d exceeded %d workers", peak.Load(), workers)
	}
}

func TestPool_ResultErrors(t *testing.T) {
	pool := NewPoolWithContext(context.Background(), 2)
	pool.Start()

	results := runJobs(pool, []Job{&stubJob{id: 0, fail: true}, &stubJob{id: 1}})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed job, got %d", failed)
	}
}

func TestPool_CloseTwice(t *testing.T) {
	pool := NewPoolWithContext(context.Background(), 1)
	pool.Start()
	pool.Submit(&stubJob{})
	pool.Close()
	pool.Close()

	count := 0
	for range pool.Results() {
		count++
	}
	if count != 1 {
		t.Errorf("expected 1 result, got %d", count)
	}
}

func TestPool_ShutdownStopsRunningJobs(t *testing.T) {
	pool := NewPoolWithContext(context.Background(), 2)
	pool.Start()
	pool.Submit(&stubJob{delay: time.Minute})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		for range pool.Results() {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not stop a running job")
	}

	// Further calls and submissions return at once
	pool.Shutdown()
	pool.Submit(&stubJob{})
	pool.Close()
}

func TestPool_ParentCancelEndsResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPoolWithContext(ctx, 2)
	pool.Start()
	defer pool.Shutdown()

	var ran atomic.Int32
	jobs := []Job{&stubJob{delay: time.Minute, ran: &ran}, &stubJob{delay: time.Minute, ran: &ran}}

	done := make(chan []Result)
	go func() { done <- runJobs(pool, jobs) }()

	for ran.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case results := <-done:
		for _, r := range results {
			if !errors.Is(r.GetError(), context.Canceled) {
				t.Errorf("expected canceled result, got %v", r.GetError())
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("results did not close after parent cancel")
	}
}
