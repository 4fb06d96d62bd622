package service

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"hackadmin/internal/domain"
	"hackadmin/internal/session"
	"hackadmin/pkg/logger"
	"hackadmin/pkg/redis"
)

// Admin types shown on the dashboard
const (
	AdminTypeSuper      = "super"
	AdminTypeDepartment = "department"
)

// Dashboard is the rendered overview
type Dashboard struct {
	Stats               domain.DashboardStats `json:"stats"`
	AdminType           string                `json:"adminType"`
	CompletedPercent    int                   `json:"completedPercent"`
	PendingPercent      int                   `json:"pendingPercent"`
	RegistrationOpen    bool                  `json:"registrationOpen"`
	RegistrationUnknown bool                  `json:"registrationUnknown,omitempty"`
}

// DashboardService builds the overview page
type DashboardService struct {
	backend Backend
	cache   *CacheService
	ttl     time.Duration
	logger  *logger.Logger
}

func NewDashboardService(b Backend, cache *CacheService, ttl time.Duration, log *logger.Logger) *DashboardService {
	if ttl <= 0 {
		ttl = redis.TTLDashboard
	}
	return &DashboardService{backend: b, cache: cache, ttl: ttl, logger: named(log, "dashboard")}
}

// Get fetches stats and registration status concurrently. A failed
// registration lookup does not fail the dashboard.
func (s *DashboardService) Get(ctx context.Context, sess session.Context) (*Dashboard, error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}

	var (
		stats  *domain.DashboardStats
		reg    *domain.RegistrationStatus
		regErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = cached(gctx, s.cache, s.statsKey(sess), s.ttl, func(ctx context.Context) (*domain.DashboardStats, error) {
			return s.backend.DashboardStats(ctx, sess)
		})
		return err
	})
	g.Go(func() error {
		reg, regErr = cached(gctx, s.cache, s.registrationKey(), redis.TTLRegistration, func(ctx context.Context) (*domain.RegistrationStatus, error) {
			return s.backend.RegistrationStatus(ctx, sess)
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := BuildDashboard(*stats)
	if regErr != nil {
		s.logger.WithError(regErr).Warn("Registration status unavailable")
		d.RegistrationUnknown = true
	} else if reg != nil {
		d.RegistrationOpen = reg.IsOpen
	}
	return d, nil
}

// BuildDashboard derives the admin type and the completion percentages
func BuildDashboard(stats domain.DashboardStats) *Dashboard {
	d := &Dashboard{
		Stats:            stats,
		AdminType:        AdminTypeDepartment,
		CompletedPercent: percent(stats.TotalCompletedTeams, stats.TotalTeams),
		PendingPercent:   percent(stats.TotalPendingTeams, stats.TotalTeams),
	}
	if stats.TotalCollegeInsideTeams != nil {
		d.AdminType = AdminTypeSuper
	}
	return d
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func (s *DashboardService) statsKey(sess session.Context) string {
	if keys := s.cache.Keys(); keys != nil {
		return keys.KeyDashboardStats(sess.Key())
	}
	return ""
}

func (s *DashboardService) registrationKey() string {
	if keys := s.cache.Keys(); keys != nil {
		return keys.KeyRegistrationStatus()
	}
	return ""
}
