package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/ppiankov/spchk/internal/lexicon"
	"github.com/ppiankov/spchk/internal/model"
)

// ReportInput gathers what a JSON report needs from a finished run
type ReportInput struct {
	Dictionary string
	Lexicon    lexicon.Stats
	Paths      []string
	Tally      *Tally
	Recorded   *Recorder
}

// NewReport assembles the machine-readable report for a run
func NewReport(in ReportInput) *model.Report {
	report := &model.Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Dictionary:  in.Dictionary,
		Lexicon: model.LexiconSummary{
			Entries:  in.Lexicon.Entries,
			Rejected: in.Lexicon.Rejected,
			Nodes:    in.Lexicon.Nodes,
		},
		Paths:    in.Paths,
		Misses:   []model.Miss{},
		Failures: []model.PathFailure{},
		Clean:    in.Tally.Clean(),
		Totals: model.Totals{
			Files:    in.Tally.Files,
			Misses:   in.Tally.Misses,
			Failures: in.Tally.Failures,
		},
	}

	if in.Recorded != nil {
		in.Recorded.mu.Lock()
		report.Misses = append(report.Misses, in.Recorded.Misses...)
		report.Failures = append(report.Failures, in.Recorded.Failures...)
		in.Recorded.mu.Unlock()
	}
	return report
}

// RenderJSON writes report to path as indented JSON. The write holds an
// exclusive lock on "<path>.lock" and replaces path atomically, so
// concurrent runs sharing a report path never leave a torn file
func RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	return atomicWrite(dir, path, append(data, '\n'))
}

// atomicWrite writes data to a temp file in dir and renames it over path
func atomicWrite(dir, path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, ".spchk-report-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync report: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("set report permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
