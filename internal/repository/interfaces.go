package repository

import (
	"context"

	"hackadmin/internal/domain"
)

// AuditRepository defines the interface for the admin action log
type AuditRepository interface {
	// Record appends an entry; ID and CreatedAt are filled when empty
	Record(ctx context.Context, entry *domain.AuditEntry) error

	// List returns entries newest first
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error)
}

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return defaultAuditLimit
	case n > maxAuditLimit:
		return maxAuditLimit
	default:
		return n
	}
}
