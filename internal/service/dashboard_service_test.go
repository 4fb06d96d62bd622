package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hackadmin/internal/domain"
	"hackadmin/internal/service"
	"hackadmin/internal/service/mocks"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/redis"
)

func setupServiceCache(t *testing.T) (*miniredis.Miniredis, *service.CacheService) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, service.NewCacheService(client, zap.NewNop())
}

func TestBuildDashboard(t *testing.T) {
	tests := []struct {
		name      string
		stats     domain.DashboardStats
		adminType string
		completed int
		pending   int
	}{
		{
			name:      "department admin",
			stats:     domain.DashboardStats{TotalTeams: 3, TotalCompletedTeams: 2, TotalPendingTeams: 1},
			adminType: service.AdminTypeDepartment,
			completed: 67,
			pending:   33,
		},
		{
			name:      "super admin",
			stats:     domain.DashboardStats{TotalTeams: 8, TotalCompletedTeams: 1, TotalPendingTeams: 7, TotalCollegeInsideTeams: intp(5)},
			adminType: service.AdminTypeSuper,
			completed: 13,
			pending:   88,
		},
		{
			name:      "no teams",
			stats:     domain.DashboardStats{},
			adminType: service.AdminTypeDepartment,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := service.BuildDashboard(tt.stats)
			assert.Equal(t, tt.adminType, d.AdminType)
			assert.Equal(t, tt.completed, d.CompletedPercent)
			assert.Equal(t, tt.pending, d.PendingPercent)
		})
	}
}

func TestDashboardService_Get(t *testing.T) {
	t.Run("registration failure does not fail the dashboard", func(t *testing.T) {
		b := new(mocks.Backend)
		b.On("DashboardStats", mock.Anything, deptAdmin).Return(&domain.DashboardStats{TotalTeams: 2, TotalCompletedTeams: 1}, nil).Once()
		b.On("RegistrationStatus", mock.Anything, deptAdmin).Return(nil, errors.NewTransportError("failed to fetch registration status", nil)).Once()

		svc := service.NewDashboardService(b, nil, 0, nil)
		d, err := svc.Get(context.Background(), deptAdmin)
		require.NoError(t, err)
		assert.Equal(t, 50, d.CompletedPercent)
		assert.True(t, d.RegistrationUnknown)
		b.AssertExpectations(t)
	})

	t.Run("stats failure fails the dashboard", func(t *testing.T) {
		b := new(mocks.Backend)
		b.On("DashboardStats", mock.Anything, deptAdmin).Return(nil, errors.NewBackendError("Access denied", 403)).Once()
		b.On("RegistrationStatus", mock.Anything, deptAdmin).Return(&domain.RegistrationStatus{IsOpen: true}, nil).Maybe()

		svc := service.NewDashboardService(b, nil, 0, nil)
		_, err := svc.Get(context.Background(), deptAdmin)
		assert.Equal(t, "Access denied", errors.MessageOf(err, ""))
	})

	t.Run("cached per subject", func(t *testing.T) {
		b := new(mocks.Backend)
		b.On("DashboardStats", mock.Anything, superAdmin).Return(&domain.DashboardStats{TotalTeams: 4, TotalCollegeInsideTeams: intp(1)}, nil).Once()
		b.On("RegistrationStatus", mock.Anything, superAdmin).Return(&domain.RegistrationStatus{IsOpen: true}, nil).Once()
		mr, cache := setupServiceCache(t)

		svc := service.NewDashboardService(b, cache, time.Minute, nil)
		for i := 0; i < 2; i++ {
			d, err := svc.Get(context.Background(), superAdmin)
			require.NoError(t, err)
			assert.Equal(t, service.AdminTypeSuper, d.AdminType)
			assert.True(t, d.RegistrationOpen)
		}
		assert.True(t, mr.Exists(cache.Keys().KeyDashboardStats(superAdmin.Key())))
		b.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		svc := service.NewDashboardService(new(mocks.Backend), nil, 0, nil)
		_, err := svc.Get(context.Background(), session.Context{Role: domain.RoleDepartmentAdmin, Subject: "cse@example.com"})
		assert.Equal(t, errors.MissingTokenMessage, errors.MessageOf(err, ""))
	})
}

func TestSettingsService(t *testing.T) {
	t.Run("custom totals need both values", func(t *testing.T) {
		_, err := service.ValidateSetting(domain.Setting{TotalUsers: "100"})
		assert.Equal(t, "Both total users and total teams are required", errors.MessageOf(err, ""))

		_, err = service.ValidateSetting(domain.Setting{TotalUsers: "100", TotalTeams: "-1"})
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

		st, err := service.ValidateSetting(domain.Setting{VisibleStats: true, TotalUsers: " 100 ", TotalTeams: "20"})
		require.NoError(t, err)
		assert.Equal(t, domain.Setting{VisibleStats: true, TotalUsers: "100", TotalTeams: "20"}, st)
	})

	t.Run("department admins cannot change settings", func(t *testing.T) {
		svc := service.NewSettingsService(new(mocks.Backend), nil, nil, nil)
		_, err := svc.Update(context.Background(), deptAdmin, domain.Setting{})
		assert.True(t, errors.IsType(err, errors.ErrorTypeAuthorization))
		_, err = svc.SetRegistration(context.Background(), deptAdmin, true)
		assert.True(t, errors.IsType(err, errors.ErrorTypeAuthorization))
	})

	t.Run("registration toggle drops the cached status", func(t *testing.T) {
		b := new(mocks.Backend)
		b.On("SetRegistrationStatus", mock.Anything, superAdmin, false).Return("", nil).Once()
		mr, cache := setupServiceCache(t)
		require.NoError(t, mr.Set(cache.Keys().KeyRegistrationStatus(), `{"isOpen":true}`))
		audit := service.NewAuditService(nil, nil)

		svc := service.NewSettingsService(b, cache, audit, nil)
		msg, err := svc.SetRegistration(context.Background(), superAdmin, false)
		require.NoError(t, err)
		assert.Equal(t, "Registration closed", msg)
		assert.False(t, mr.Exists(cache.Keys().KeyRegistrationStatus()))

		entries, _ := audit.List(context.Background(), superAdmin, domain.AuditFilter{Action: domain.ActionRegistrationStatus})
		require.Len(t, entries, 1)
		assert.Equal(t, "false", entries[0].Detail["open"])
	})
}

func TestPanelService(t *testing.T) {
	t.Run("super admin must pick departments", func(t *testing.T) {
		svc := service.NewPanelService(new(mocks.Backend), nil, nil, nil)
		_, err := svc.List(context.Background(), superAdmin, nil)
		assert.Equal(t, "Please select at least one department", errors.MessageOf(err, ""))
	})

	t.Run("department lists are split", func(t *testing.T) {
		b := new(mocks.Backend)
		b.On("ListPanels", mock.Anything, superAdmin, []string{"CSE", "CSE_Cyber_Security", "IT"}).Return([]domain.Panel{{ID: 1}}, nil).Once()
		svc := service.NewPanelService(b, nil, nil, nil)
		panels, err := svc.List(context.Background(), superAdmin, []string{"CSE,CSE_Cyber_Security", "IT"})
		require.NoError(t, err)
		assert.Len(t, panels, 1)
		b.AssertExpectations(t)
	})

	t.Run("department admin is scoped by the backend", func(t *testing.T) {
		b := new(mocks.Backend)
		b.On("ListPanels", mock.Anything, deptAdmin, []string(nil)).Return([]domain.Panel{}, nil).Once()
		svc := service.NewPanelService(b, nil, nil, nil)
		_, err := svc.List(context.Background(), deptAdmin, []string{"ME"})
		require.NoError(t, err)
		b.AssertExpectations(t)
	})

	t.Run("export names the file after the panel", func(t *testing.T) {
		b := new(mocks.Backend)
		b.On("PanelDetails", mock.Anything, superAdmin, 4).Return(&domain.PanelDetails{
			Panel:  domain.Panel{ID: 4, PanelName: "Panel A / CSE"},
			Teams:  []domain.Team{{ID: 1}, {ID: 2}},
			Judges: []domain.Judge{{Name: "J1"}},
		}, nil).Once()
		svc := service.NewPanelService(b, nil, nil, nil)
		exp, err := svc.Export(context.Background(), superAdmin, 4)
		require.NoError(t, err)
		assert.Equal(t, 2, exp.Rows)
		assert.Contains(t, exp.Filename, "panel-panel-a-cse-export-")
	})
}

func TestUnassignedService_View(t *testing.T) {
	teams := []domain.Team{
		{ID: 1, Department: "CSE", ParticipationCategory: "college", Category: &domain.Category{ID: 2, Name: "AI solutions for automation"}},
		{ID: 2, Department: "CSE", ParticipationCategory: "college"},
		{ID: 3, Department: "IT", ParticipationCategory: "school"},
	}
	b := new(mocks.Backend)
	b.On("UnassignedTeams", mock.Anything, superAdmin).Return(teams, nil)
	svc := service.NewUnassignedService(b, nil)

	v, err := svc.View(context.Background(), superAdmin, service.UnassignedFilter{Department: "CSE"})
	require.NoError(t, err)
	assert.Len(t, v.Teams, 2)
	assert.Equal(t, 3, v.Stats.TotalTeams)
	assert.Equal(t, map[string]int{"CSE": 2, "IT": 1}, v.Stats.ByDepartment)
	assert.Equal(t, map[string]int{"AI solutions for automation": 1, service.UncategorizedLabel: 2}, v.Stats.ByCategory)
	assert.Equal(t, map[string]int{"college": 2, "school": 1}, v.Stats.ByParticipationCategory)

	v, err = svc.View(context.Background(), superAdmin, service.UnassignedFilter{Category: "AI solutions for automation", ParticipationCategory: "school"})
	require.NoError(t, err)
	assert.Empty(t, v.Teams)
	assert.Equal(t, service.EmptyResultMessage, v.Message)
}
