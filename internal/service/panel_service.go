package service

import (
	"context"
	"strings"
	"time"

	"hackadmin/internal/csvexport"
	"hackadmin/internal/domain"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
	"hackadmin/pkg/redis"
)

// PanelService lists judging panels and exports their rosters
type PanelService struct {
	backend Backend
	cache   *CacheService
	audit   *AuditService
	logger  *logger.Logger
	now     func() time.Time
}

func NewPanelService(b Backend, cache *CacheService, audit *AuditService, log *logger.Logger) *PanelService {
	return &PanelService{backend: b, cache: cache, audit: audit, logger: named(log, "panels"), now: time.Now}
}

// List returns panels. Super admins must pick at least one department;
// department admins are scoped by the backend and their list is not cached.
func (s *PanelService) List(ctx context.Context, sess session.Context, departments []string) ([]domain.Panel, error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}
	depts := make([]string, 0, len(departments))
	for _, d := range departments {
		for _, part := range strings.Split(d, ",") {
			if part = strings.TrimSpace(part); part != "" {
				depts = append(depts, part)
			}
		}
	}

	key := ""
	if sess.IsSuperAdmin() {
		if len(depts) == 0 {
			return nil, errors.NewValidationError("Please select at least one department", nil)
		}
		if keys := s.cache.Keys(); keys != nil {
			key = keys.KeyPanels(depts)
		}
	} else {
		depts = nil
	}
	for _, d := range depts {
		if !domain.IsDepartmentList(d) {
			return nil, errors.NewValidationError("Unknown department", map[string]interface{}{"department": d})
		}
	}

	return cached(ctx, s.cache, key, redis.TTLPanels, func(ctx context.Context) ([]domain.Panel, error) {
		return s.backend.ListPanels(ctx, sess, depts)
	})
}

// Details fetches one panel with its teams and judges
func (s *PanelService) Details(ctx context.Context, sess session.Context, panelID int) (*domain.PanelDetails, error) {
	if panelID <= 0 {
		return nil, errors.NewValidationError("Invalid panel id", nil)
	}
	return s.backend.PanelDetails(ctx, sess, panelID)
}

// Export renders one row per team of the panel
func (s *PanelService) Export(ctx context.Context, sess session.Context, panelID int) (*Export, error) {
	d, err := s.Details(ctx, sess, panelID)
	if err != nil {
		return nil, err
	}
	rows := csvexport.PanelRows(*d)

	name := slugify(d.Panel.PanelName)
	if name == "" {
		name = itoa(panelID)
	}
	exp := &Export{
		Filename: csvexport.Filename("panel-"+name, s.now()),
		Body:     csvexport.Encode(rows, csvexport.PanelColumns),
		Rows:     len(rows),
	}
	s.audit.Record(ctx, sess, domain.ActionExport, "panel:"+itoa(panelID), map[string]string{"rows": itoa(exp.Rows)})
	return exp, nil
}
