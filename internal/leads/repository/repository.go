// Package repository stores the current lead batch. Storage is in-memory
// and whole-batch: each ingest replaces the previous batch and its report
// in one swap, so readers never observe a half-written batch.
package repository

import (
	"sync"

	"lead_triage_backend/internal/leads/transport"
)

// BatchRepository holds the most recent qualified batch and its report.
type BatchRepository interface {
	Replace(batch []transport.QualifiedLead, report []transport.SourceRow)
	Current() []transport.QualifiedLead
	Report() []transport.SourceRow
}

// InMemoryRepository is the process-local BatchRepository. The batch is
// empty until the first successful ingest.
type InMemoryRepository struct {
	mu     sync.RWMutex
	batch  []transport.QualifiedLead
	report []transport.SourceRow
}

var _ BatchRepository = (*InMemoryRepository)(nil)

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Replace swaps in a new batch and report atomically.
func (r *InMemoryRepository) Replace(batch []transport.QualifiedLead, report []transport.SourceRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batch = batch
	r.report = report
}

// Current returns the stored batch. Callers must not mutate the result.
func (r *InMemoryRepository) Current() []transport.QualifiedLead {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.batch
}

// Report returns the per-source report for the stored batch.
func (r *InMemoryRepository) Report() []transport.SourceRow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.report
}
