package pipeline

import (
	"errors"
	"fmt"

	"meeting-insights-go/internal/analyzer"
	"meeting-insights-go/internal/fetcher"
)

// Kind is the closed error classification of a failed object run. Callers
// switch on kind to decide retry vs. quarantine vs. propagate.
type Kind string

const (
	KindUnknown             Kind = "unknown"
	KindRetrievalFailed     Kind = "retrieval_failed"
	KindUnparsableResponse  Kind = "unparsable_response"
	KindProviderUnavailable Kind = "provider_unavailable"
	KindPersistenceFailure  Kind = "persistence_failure"
	KindLedgerWriteFailure  Kind = "ledger_write_failure"
)

// StageError records where and why an object's pipeline failed.
type StageError struct {
	State State
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.State, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageError(state State, err error) *StageError {
	return &StageError{State: state, Kind: classify(err), Err: err}
}

// classify maps component sentinel errors onto the closed kind enumeration.
func classify(err error) Kind {
	switch {
	case errors.Is(err, fetcher.ErrRetrievalFailed):
		return KindRetrievalFailed
	case errors.Is(err, analyzer.ErrProvidersExhausted):
		return KindProviderUnavailable
	case errors.Is(err, analyzer.ErrUnparsableResponse),
		errors.Is(err, analyzer.ErrNothingToAnalyze):
		return KindUnparsableResponse
	default:
		return KindUnknown
	}
}
