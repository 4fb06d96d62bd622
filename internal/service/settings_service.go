package service

import (
	"context"
	"strconv"
	"strings"

	"hackadmin/internal/domain"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// SettingsView is the rendered settings page
type SettingsView struct {
	Setting          domain.Setting          `json:"setting"`
	Displayed        domain.ParticipantStats `json:"displayed"`
	RegistrationOpen bool                    `json:"registrationOpen"`
}

// SettingsService manages public stats visibility and registration
type SettingsService struct {
	backend Backend
	cache   *CacheService
	audit   *AuditService
	logger  *logger.Logger
}

func NewSettingsService(b Backend, cache *CacheService, audit *AuditService, log *logger.Logger) *SettingsService {
	return &SettingsService{backend: b, cache: cache, audit: audit, logger: named(log, "settings")}
}

// Get loads the current settings, the stats as displayed and the
// registration state
func (s *SettingsService) Get(ctx context.Context, sess session.Context) (*SettingsView, error) {
	setting, err := s.backend.Setting(ctx, sess)
	if err != nil {
		return nil, err
	}
	displayed, err := s.backend.ParticipantStats(ctx, sess)
	if err != nil {
		return nil, err
	}
	reg, err := s.backend.RegistrationStatus(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &SettingsView{Setting: *setting, Displayed: *displayed, RegistrationOpen: reg.IsOpen}, nil
}

// ValidateSetting requires both custom totals when either is given and
// checks they are non-negative integers
func ValidateSetting(st domain.Setting) (domain.Setting, error) {
	st.TotalUsers = strings.TrimSpace(st.TotalUsers)
	st.TotalTeams = strings.TrimSpace(st.TotalTeams)
	if st.TotalUsers == "" && st.TotalTeams == "" {
		return st, nil
	}
	if st.TotalUsers == "" || st.TotalTeams == "" {
		return st, errors.NewValidationError("Both total users and total teams are required", nil)
	}
	for field, v := range map[string]string{"totalUsers": st.TotalUsers, "totalTeams": st.TotalTeams} {
		if n, err := strconv.Atoi(v); err != nil || n < 0 {
			return st, errors.NewValidationError("Totals must be non-negative numbers", map[string]interface{}{field: v})
		}
	}
	return st, nil
}

// Update saves the visibility toggle and custom totals
func (s *SettingsService) Update(ctx context.Context, sess session.Context, st domain.Setting) (string, error) {
	if !sess.IsSuperAdmin() {
		return "", errors.NewAuthorizationError("Only super admins can change settings")
	}
	st, err := ValidateSetting(st)
	if err != nil {
		return "", err
	}
	msg, err := s.backend.UpdateSetting(ctx, sess, st)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Settings updated successfully"
	}
	if keys := s.cache.Keys(); keys != nil {
		s.cache.Invalidate(ctx, keys.KeyParticipantStats())
	}
	s.audit.Record(ctx, sess, domain.ActionUpdateSetting, "setting", map[string]string{
		"visibleStats": strconv.FormatBool(st.VisibleStats),
		"totalUsers":   st.TotalUsers,
		"totalTeams":   st.TotalTeams,
	})
	return msg, nil
}

// SetRegistration opens or closes registration
func (s *SettingsService) SetRegistration(ctx context.Context, sess session.Context, open bool) (string, error) {
	if !sess.IsSuperAdmin() {
		return "", errors.NewAuthorizationError("Only super admins can change registration")
	}
	msg, err := s.backend.SetRegistrationStatus(ctx, sess, open)
	if err != nil {
		return "", err
	}
	if msg == "" {
		if open {
			msg = "Registration opened"
		} else {
			msg = "Registration closed"
		}
	}
	if keys := s.cache.Keys(); keys != nil {
		s.cache.Invalidate(ctx, keys.KeyRegistrationStatus())
	}
	s.audit.Record(ctx, sess, domain.ActionRegistrationStatus, "registration", map[string]string{"open": strconv.FormatBool(open)})
	return msg, nil
}
