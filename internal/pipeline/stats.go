package pipeline

import (
	"fmt"
	"sync"
)

// Stats accumulates run outcomes across workers.
type Stats struct {
	mu        sync.Mutex
	Processed int
	Skipped   int
	Failed    int
	byKind    map[Kind]int
}

func NewStats() *Stats {
	return &Stats{byKind: make(map[Kind]int)}
}

func (s *Stats) addProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Processed++
}

func (s *Stats) addSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
}

func (s *Stats) addFailed(k Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
	s.byKind[k]++
}

// TopFailure returns the dominant failure kind and its count.
func (s *Stats) TopFailure() (Kind, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var top Kind
	max := 0
	for k, n := range s.byKind {
		if n > max {
			top, max = k, n
		}
	}
	return top, max
}

// Summary renders a one-line run digest for the closing log entry.
func (s *Stats) Summary() string {
	kind, n := s.TopFailure()
	s.mu.Lock()
	defer s.mu.Unlock()
	if n == 0 {
		return fmt.Sprintf("processed=%d skipped=%d failed=0", s.Processed, s.Skipped)
	}
	return fmt.Sprintf("processed=%d skipped=%d failed=%d top_failure=%s(%d)",
		s.Processed, s.Skipped, s.Failed, kind, n)
}
