package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hackadmin/internal/backend"
	"hackadmin/internal/domain"
	"hackadmin/internal/service"
	"hackadmin/internal/service/mocks"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
)

var _ service.Backend = (*mocks.Backend)(nil)

var (
	superAdmin = session.Context{Token: "tok-super", Role: domain.RoleSuperAdmin, Subject: "root@example.com"}
	deptAdmin  = session.Context{Token: "tok-dept", Role: domain.RoleDepartmentAdmin, Subject: "cse@example.com", Department: "CSE"}
)

func intp(n int) *int { return &n }

func TestTeamService_List(t *testing.T) {
	tests := []struct {
		name      string
		segment   domain.TeamSegment
		query     backend.TeamQuery
		wantQuery backend.TeamQuery
		page      backend.Page[domain.Team]
		summary   string
		message   string
	}{
		{
			name:      "college inside keeps department and defaults paging",
			segment:   domain.SegmentCollegeInside,
			query:     backend.TeamQuery{Department: "CSE", Status: "all"},
			wantQuery: backend.TeamQuery{Department: "CSE", Page: 1, Limit: 20},
			page:      backend.Page[domain.Team]{Items: []domain.Team{{ID: 1, TeamCode: "T-001"}}, Total: 1, TotalPages: 1, Page: 1, Limit: 20},
			summary:   "1 to 1 of 1",
		},
		{
			name:      "school drops college-only filters",
			segment:   domain.SegmentSchool,
			query:     backend.TeamQuery{Department: "CSE", IsKietian: "true", Page: 2, Limit: 10, TeamCode: " S-9 "},
			wantQuery: backend.TeamQuery{Page: 2, Limit: 10, TeamCode: "S-9"},
			page:      backend.Page[domain.Team]{Items: []domain.Team{}, Page: 2, Limit: 10},
			summary:   "0 to 0 of 0",
			message:   service.EmptyResultMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(mocks.Backend)
			b.On("ListTeams", mock.Anything, superAdmin, tt.segment, tt.wantQuery).Return(tt.page, nil).Once()

			svc := service.NewTeamService(b, service.NewAuditService(nil, nil), nil)
			res, err := svc.List(context.Background(), superAdmin, tt.segment, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.summary, res.Summary)
			assert.Equal(t, tt.message, res.Message)
			b.AssertExpectations(t)
		})
	}
}

func TestTeamService_List_RejectsUnknownDepartment(t *testing.T) {
	b := new(mocks.Backend)
	svc := service.NewTeamService(b, nil, nil)

	_, err := svc.List(context.Background(), superAdmin, domain.SegmentCollegeInside, backend.TeamQuery{Department: "ARTS"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	b.AssertNotCalled(t, "ListTeams", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTeamService_Export_WalksPagesAndSorts(t *testing.T) {
	b := new(mocks.Backend)
	page1 := backend.Page[domain.Team]{
		Items:      []domain.Team{{ID: 2, TeamCode: "B", CategoryID: intp(2)}, {ID: 3, TeamCode: "C", CategoryID: intp(1)}},
		Total:      3,
		TotalPages: 2,
		Page:       1,
	}
	page2 := backend.Page[domain.Team]{
		Items:      []domain.Team{{ID: 1, TeamCode: "A", CategoryID: intp(1)}},
		Total:      3,
		TotalPages: 2,
		Page:       2,
	}
	b.On("ListTeams", mock.Anything, superAdmin, domain.SegmentCollegeInside, mock.MatchedBy(func(q backend.TeamQuery) bool { return q.Page == 1 })).Return(page1, nil).Once()
	b.On("ListTeams", mock.Anything, superAdmin, domain.SegmentCollegeInside, mock.MatchedBy(func(q backend.TeamQuery) bool { return q.Page == 2 })).Return(page2, nil).Once()

	audit := service.NewAuditService(nil, nil)
	svc := service.NewTeamService(b, audit, nil)
	exp, err := svc.Export(context.Background(), superAdmin, domain.SegmentCollegeInside, backend.TeamQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, exp.Rows)
	assert.True(t, strings.HasPrefix(exp.Filename, "teams-college-inside-export-"))
	lines := strings.Split(exp.Body, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "1,A,"))
	assert.True(t, strings.HasPrefix(lines[2], "3,C,"))
	assert.True(t, strings.HasPrefix(lines[3], "2,B,"))

	entries, err := audit.List(context.Background(), superAdmin, domain.AuditFilter{Action: domain.ActionExport})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "teams:college/inside", entries[0].Target)
	b.AssertExpectations(t)
}

func TestTeamService_Export_RefusesOversizedRoster(t *testing.T) {
	b := new(mocks.Backend)
	b.On("ListTeams", mock.Anything, superAdmin, domain.SegmentSchool, mock.Anything).
		Return(backend.Page[domain.Team]{Items: []domain.Team{{ID: 1}}, Total: 25000, TotalPages: 250}, nil)

	audit := service.NewAuditService(nil, nil)
	svc := service.NewTeamService(b, audit, nil)
	exp, err := svc.Export(context.Background(), superAdmin, domain.SegmentSchool, backend.TeamQuery{})
	require.Error(t, err)
	assert.Nil(t, exp)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	assert.Equal(t, "Too many teams to export, narrow the filters", errors.MessageOf(err, ""))
	b.AssertNumberOfCalls(t, "ListTeams", 200)

	entries, err := audit.List(context.Background(), superAdmin, domain.AuditFilter{Action: domain.ActionExport})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUserService_RoleGate(t *testing.T) {
	b := new(mocks.Backend)
	svc := service.NewUserService(b, nil, nil)

	_, err := svc.List(context.Background(), deptAdmin, backend.UserQuery{Department: "CSE"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeAuthorization))

	b.On("ListUsers", mock.Anything, deptAdmin, backend.UserQuery{Page: 1, Limit: 10, UserID: "U-1"}).
		Return(backend.Page[domain.User]{Items: []domain.User{{ID: 1}}, Total: 1, TotalPages: 1, Page: 1, Limit: 10}, nil).Once()
	res, err := svc.List(context.Background(), deptAdmin, backend.UserQuery{UserID: " U-1 "})
	require.NoError(t, err)
	assert.Equal(t, "1 to 1 of 1", res.Summary)
	b.AssertExpectations(t)
}

func TestUserService_Export_SortsByYear(t *testing.T) {
	b := new(mocks.Backend)
	users := []domain.User{
		{ID: 1, Name: "No Year"},
		{ID: 2, Name: "Third", CollegeStudent: &domain.CollegeStudent{Year: 3}},
		{ID: 3, Name: "First", CollegeStudent: &domain.CollegeStudent{Year: 1}},
	}
	b.On("ListUsers", mock.Anything, superAdmin, mock.Anything).
		Return(backend.Page[domain.User]{Items: users, Total: 3, TotalPages: 1, Page: 1}, nil).Once()

	svc := service.NewUserService(b, nil, nil)
	exp, err := svc.Export(context.Background(), superAdmin, backend.UserQuery{})
	require.NoError(t, err)

	lines := strings.Split(exp.Body, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "3,"))
	assert.True(t, strings.HasPrefix(lines[2], "2,"))
	assert.True(t, strings.HasPrefix(lines[3], "1,"))
}
