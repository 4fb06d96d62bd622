package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hackadmin/internal/domain"
	"hackadmin/pkg/database"
)

// AuditTableDDL creates the admin action log
const AuditTableDDL = `
CREATE TABLE IF NOT EXISTS admin_audit_log (
	id UUID PRIMARY KEY,
	actor VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT '',
	action VARCHAR(64) NOT NULL,
	target VARCHAR(255) NOT NULL DEFAULT '',
	detail JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_admin_audit_log_created_at ON admin_audit_log (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_admin_audit_log_actor ON admin_audit_log (actor);
`

// AuditDropDDL removes the admin action log
const AuditDropDDL = `DROP TABLE IF EXISTS admin_audit_log CASCADE;`

type PostgresAuditRepository struct {
	db *database.PostgresDB
}

func NewPostgresAuditRepository(db *database.PostgresDB) *PostgresAuditRepository {
	return &PostgresAuditRepository{db: db}
}

// Record inserts an audit row
func (r *PostgresAuditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	prepare(entry)

	detail, err := json.Marshal(entry.Detail)
	if err != nil {
		return fmt.Errorf("failed to encode audit detail: %w", err)
	}

	query := `
		INSERT INTO admin_audit_log (id, actor, role, action, target, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.Pool.Exec(ctx, query,
		entry.ID,
		entry.Actor,
		entry.Role,
		entry.Action,
		entry.Target,
		string(detail),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// List returns the newest entries matching filter
func (r *PostgresAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	query := `
		SELECT id::text, actor, role, action, target, detail, created_at
		FROM admin_audit_log
		WHERE ($1 = '' OR actor = $1) AND ($2 = '' OR action = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.db.Pool.Query(ctx, query, filter.Actor, filter.Action, clampLimit(filter.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AuditEntry, error) {
		var (
			e      domain.AuditEntry
			detail []byte
		)
		if err := row.Scan(&e.ID, &e.Actor, &e.Role, &e.Action, &e.Target, &detail, &e.CreatedAt); err != nil {
			return e, err
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return e, fmt.Errorf("failed to decode audit detail: %w", err)
			}
		}
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit entries: %w", err)
	}
	return entries, nil
}

func prepare(entry *domain.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Detail == nil {
		entry.Detail = map[string]string{}
	}
}
