package service

import (
	"context"
	"time"

	"hackadmin/internal/domain"
	"hackadmin/internal/repository"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// AuditService records mutating console actions. A failed write is logged
// and never fails the action it describes.
type AuditService struct {
	repo   repository.AuditRepository
	logger *logger.Logger
}

func NewAuditService(repo repository.AuditRepository, log *logger.Logger) *AuditService {
	if repo == nil {
		repo = repository.NewMemoryAuditRepository(0)
	}
	return &AuditService{repo: repo, logger: named(log, "audit")}
}

// Record appends an entry for the session's subject
func (s *AuditService) Record(ctx context.Context, sess session.Context, action, target string, detail map[string]string) {
	if s == nil {
		return
	}
	entry := &domain.AuditEntry{
		Actor:  sess.Actor(),
		Role:   sess.Role,
		Action: action,
		Target: target,
		Detail: detail,
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.repo.Record(writeCtx, entry); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"action": action,
			"target": target,
		}).Error("Failed to record audit entry")
		return
	}
	s.logger.WithFields(map[string]interface{}{
		"actor":  entry.Actor,
		"action": action,
		"target": target,
	}).Info("Admin action recorded")
}

// List returns recent entries. Only super admins may read other admins'
// actions; department admins see their own.
func (s *AuditService) List(ctx context.Context, sess session.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}
	if !sess.IsSuperAdmin() {
		filter.Actor = sess.Actor()
	}
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError("failed to load audit log", err)
	}
	return entries, nil
}
