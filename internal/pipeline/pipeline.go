// Package pipeline orchestrates the per-object processing run: ledger claim,
// retrieval, transcription, analysis, persistence, and the failure path into
// quarantine. Stage progression follows the explicit state machine in
// state.go.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"meeting-insights-go/internal/logger"
	"meeting-insights-go/internal/schema"
	"meeting-insights-go/internal/types"
)

// Fetcher retrieves an object into local storage.
type Fetcher interface {
	Retrieve(ctx context.Context, obj types.SourceObject) (string, error)
}

// Transcriber converts local media to text and duration in minutes. Internal
// failure yields ("", 0), never an error.
type Transcriber interface {
	Transcribe(ctx context.Context, localPath string) (string, float64)
}

// Analyzer produces the canonical record for a transcript.
type Analyzer interface {
	Analyze(ctx context.Context, transcript, contextName string) (schema.Record, error)
}

// Ledger is the idempotency store.
type Ledger interface {
	IsProcessed(ctx context.Context, objectID string) (bool, error)
	Claim(ctx context.Context, objectID, name string) (bool, error)
	RecordOutcome(ctx context.Context, objectID string, status types.Status, errText, name string) error
}

// Sink persists canonical records.
type Sink interface {
	Append(rec schema.Record) error
}

// Quarantiner relocates failed objects. Never returns: quarantine failures
// are logged by the manager and must not mask the original error.
type Quarantiner interface {
	Quarantine(ctx context.Context, obj types.SourceObject, reason string)
}

// Runner executes the pipeline for source objects.
type Runner struct {
	Fetcher     Fetcher
	Transcriber Transcriber
	Analyzer    Analyzer
	Ledger      Ledger
	Sink        Sink
	Quarantine  Quarantiner
	// DefaultOwner fills the Owner field when the provider left it N/A.
	DefaultOwner string
	// KeepLocal leaves fetched files in the scratch dir when true.
	KeepLocal bool
}

// RunAll processes the objects with at most workers concurrent pipelines.
// Per-object failures are isolated: the run continues with the next object.
func (r *Runner) RunAll(ctx context.Context, objs []types.SourceObject, workers int) *Stats {
	if workers <= 0 {
		workers = 1
	}
	log := logger.New().WithRun().WithField("component", "pipeline")
	log.WithField("objects", len(objs)).WithField("workers", workers).Info("run started")

	stats := NewStats()
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for _, obj := range objs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			log.Warn("run cancelled, waiting for in-flight objects")
			wg.Wait()
			return stats
		}
		wg.Add(1)
		go func(obj types.SourceObject) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := r.Run(ctx, obj, stats); err != nil {
				logger.New().WithObject(obj.ID, obj.Name).WithError(err).
					Error("object failed, continuing run")
			}
		}(obj)
	}
	wg.Wait()

	log.Info("run finished: " + stats.Summary())
	return stats
}

// Run executes the full pipeline for one object. The returned error is the
// object's error of record; terminal ledger state and quarantine are handled
// internally before it is returned.
func (r *Runner) Run(ctx context.Context, obj types.SourceObject, stats *Stats) error {
	log := logger.New().WithObject(obj.ID, obj.Name).WithField("component", "pipeline")
	state := StateDiscovered

	processed, err := r.Ledger.IsProcessed(ctx, obj.ID)
	if err != nil {
		// A broken ledger read breaks the at-most-once contract; surface it
		// without touching the object.
		return stageError(state, fmt.Errorf("%w: %v", errLedger, err))
	}
	if processed {
		log.Debug("already processed, skipping")
		stats.addSkipped()
		return nil
	}
	claimed, err := r.Ledger.Claim(ctx, obj.ID, obj.Name)
	if err != nil {
		return stageError(state, fmt.Errorf("%w: %v", errLedger, err))
	}
	if !claimed {
		log.Debug("claimed elsewhere, skipping")
		stats.addSkipped()
		return nil
	}

	state = r.advance(state, StateRetrieving, log)
	localPath, err := r.Fetcher.Retrieve(ctx, obj)
	if err != nil {
		return r.fail(ctx, obj, state, err, stats, log)
	}
	if !r.KeepLocal {
		defer os.Remove(localPath)
	}

	state = r.advance(state, StateTranscribing, log)
	transcript, minutes := r.Transcriber.Transcribe(ctx, localPath)

	state = r.advance(state, StateAnalyzing, log)
	rec, err := r.Analyzer.Analyze(ctx, transcript, obj.Name)
	if err != nil {
		return r.fail(ctx, obj, state, err, stats, log)
	}
	r.inject(rec, obj, minutes)

	state = r.advance(state, StatePersisting, log)
	if err := r.Sink.Append(rec); err != nil {
		err = &StageError{State: state, Kind: KindPersistenceFailure, Err: err}
		return r.fail(ctx, obj, state, err, stats, log)
	}

	if err := r.Ledger.RecordOutcome(ctx, obj.ID, types.StatusProcessed, "", obj.Name); err != nil {
		// The record was persisted but the ledger write failed: fatal, since
		// a future run would double-process this object.
		return &StageError{State: state, Kind: KindLedgerWriteFailure, Err: err}
	}
	state = r.advance(state, StateProcessed, log)
	stats.addProcessed()
	log.Info("object processed")
	return nil
}

var errLedger = fmt.Errorf("ledger unavailable")

// advance moves to the next stage, guarded by the transition table.
func (r *Runner) advance(from, to State, log *logrus.Entry) State {
	if !CanTransition(from, to) {
		// Programming error, not a runtime condition.
		panic(fmt.Sprintf("illegal pipeline transition %s -> %s", from, to))
	}
	log.WithField("state", string(to)).Debug("stage started")
	return to
}

// fail drives the terminal failure path: Failed ledger entry, quarantine,
// and the original error propagated to the caller.
func (r *Runner) fail(ctx context.Context, obj types.SourceObject, from State, cause error, stats *Stats, log *logrus.Entry) error {
	serr, ok := cause.(*StageError)
	if !ok {
		serr = stageError(from, cause)
	}
	r.advance(from, StateFailed, log)
	stats.addFailed(serr.Kind)

	if err := r.Ledger.RecordOutcome(ctx, obj.ID, types.StatusFailed, serr.Error(), obj.Name); err != nil {
		// Surfaced alongside the original cause: an unrecorded failure could
		// be silently retried forever.
		log.WithError(err).Error("failed to record ledger outcome")
		return &StageError{State: from, Kind: KindLedgerWriteFailure,
			Err: fmt.Errorf("%v (while recording: %w)", serr, err)}
	}
	r.Quarantine.Quarantine(ctx, obj, serr.Error())
	return serr
}

// inject writes the orchestrator-owned metadata fields after analysis.
func (r *Runner) inject(rec schema.Record, obj types.SourceObject, minutes float64) {
	rec[schema.FieldFileName] = obj.Name
	rec[schema.FieldFileID] = obj.ID
	if rec[schema.FieldDurationMinutes] == schema.NA && minutes > 0 {
		rec[schema.FieldDurationMinutes] = strconv.FormatFloat(minutes, 'f', 1, 64)
	}
	if rec[schema.FieldOwner] == schema.NA && r.DefaultOwner != "" {
		rec[schema.FieldOwner] = r.DefaultOwner
	}
}
