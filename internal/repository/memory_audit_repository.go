package repository

import (
	"context"
	"sync"

	"hackadmin/internal/domain"
)

// MemoryAuditRepository keeps the most recent entries in process. It backs
// the audit log when no database is configured.
type MemoryAuditRepository struct {
	mu       sync.RWMutex
	entries  []domain.AuditEntry
	capacity int
}

func NewMemoryAuditRepository(capacity int) *MemoryAuditRepository {
	if capacity <= 0 {
		capacity = maxAuditLimit
	}
	return &MemoryAuditRepository{capacity: capacity}
}

func (r *MemoryAuditRepository) Record(_ context.Context, entry *domain.AuditEntry) error {
	prepare(entry)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	if over := len(r.entries) - r.capacity; over > 0 {
		r.entries = append([]domain.AuditEntry(nil), r.entries[over:]...)
	}
	return nil
}

func (r *MemoryAuditRepository) List(_ context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	limit := clampLimit(filter.Limit)

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.AuditEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.entries[i]
		if filter.Actor != "" && e.Actor != filter.Actor {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
