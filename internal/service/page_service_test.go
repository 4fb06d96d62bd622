package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hackadmin/internal/backend"
	"hackadmin/internal/domain"
	"hackadmin/internal/filter"
	"hackadmin/internal/service"
	"hackadmin/internal/service/mocks"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
)

func newPageService(b *mocks.Backend) *service.PageService {
	audit := service.NewAuditService(nil, nil)
	return service.NewPageService(
		service.NewTeamService(b, audit, nil),
		service.NewUserService(b, audit, nil),
		service.NewAssignmentService(b, nil, audit, nil),
		service.NewEvaluationService(b, nil, audit, nil),
		time.Minute,
		nil,
	)
}

func settle(t *testing.T, pages *service.PageService, page string) service.PageSnapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snap, err := pages.Settle(ctx, superAdmin, page)
	require.NoError(t, err)
	return snap
}

func TestPageService_EvaluatedCascade(t *testing.T) {
	b := new(mocks.Backend)
	b.On("FinalResults", mock.Anything, superAdmin, backend.ResultQuery{ParticipationCategory: "college", CategoryID: "2"}).
		Return([]domain.Team{{ID: 1, CategoryID: intp(2)}}, nil).Once()
	pages := newPageService(b)
	ctx := context.Background()

	snap, err := pages.Open(ctx, superAdmin, "evaluated")
	require.NoError(t, err)
	assert.Equal(t, filter.StageNoDiscriminator, snap.Stage)
	assert.Equal(t, "Select a participation category to view teams", snap.Prompt)

	snap, err = pages.SetFilters(ctx, superAdmin, "evaluated", filter.State{filter.KeyParticipationCategory: "college"})
	require.NoError(t, err)
	assert.Equal(t, filter.StageMissingKey, snap.Stage)
	b.AssertNotCalled(t, "FinalResults", mock.Anything, mock.Anything, mock.Anything)

	snap, err = pages.SetFilters(ctx, superAdmin, "evaluated", filter.State{filter.KeyCategory: "2"})
	require.NoError(t, err)
	assert.Equal(t, filter.StageLoading, snap.Stage)

	snap = settle(t, pages, "evaluated")
	assert.Equal(t, filter.StageLoaded, snap.Stage)
	require.Len(t, snap.Data.Groups, 1)
	assert.Equal(t, "AI solutions for automation", snap.Data.Groups[0].Category)
	b.AssertExpectations(t)
}

func TestPageService_TeamsCollegeInside(t *testing.T) {
	b := new(mocks.Backend)
	b.On("ListTeams", mock.Anything, superAdmin, domain.SegmentCollegeInside, backend.TeamQuery{Page: 1, Limit: 20}).
		Return(backend.Page[domain.Team]{Items: []domain.Team{{ID: 1, TeamCode: "T-1"}}, Total: 1, TotalPages: 1, Page: 1, Limit: 20}, nil).Once()
	pages := newPageService(b)

	_, err := pages.SetFilters(context.Background(), superAdmin, "teams", filter.State{filter.KeySegment: "college-inside"})
	require.NoError(t, err)

	snap := settle(t, pages, "teams")
	require.Equal(t, filter.StageLoaded, snap.Stage)
	require.NotNil(t, snap.Data.Teams)
	assert.Equal(t, "1 to 1 of 1", snap.Data.Teams.Summary)
	assert.Len(t, snap.Data.Teams.Items, 1)
	b.AssertExpectations(t)
}

func TestPageService_ErrorKeepsPreviousData(t *testing.T) {
	b := new(mocks.Backend)
	b.On("TeamsByDepartmentAndCategory", mock.Anything, superAdmin, backend.AssignmentQuery{ParticipationCategory: "school", Status: "unassign"}).
		Return([]domain.Team{{ID: 3}}, nil).Once()
	b.On("TeamsByDepartmentAndCategory", mock.Anything, superAdmin, backend.AssignmentQuery{ParticipationCategory: "school", Status: "assign"}).
		Return(nil, errors.NewTransportError("failed to fetch teams", nil)).Once()
	pages := newPageService(b)
	ctx := context.Background()
	page := "assignment-participation"

	_, err := pages.SetFilters(ctx, superAdmin, page, filter.State{filter.KeyParticipationCategory: "school"})
	require.NoError(t, err)
	require.Equal(t, filter.StageLoaded, settle(t, pages, page).Stage)

	_, err = pages.SetFilters(ctx, superAdmin, page, filter.State{filter.KeyStatus: "assign"})
	require.NoError(t, err)
	snap := settle(t, pages, page)
	assert.Equal(t, filter.StageError, snap.Stage)
	assert.Equal(t, "failed to fetch teams", snap.Error)
	assert.True(t, snap.HasData)
	assert.Len(t, snap.Data.Pending, 1)
	b.AssertExpectations(t)
}

func TestPageService_Errors(t *testing.T) {
	pages := newPageService(new(mocks.Backend))
	ctx := context.Background()

	_, err := pages.Open(ctx, superAdmin, "nope")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	_, err = pages.SetFilters(ctx, superAdmin, "evaluated", filter.State{"colour": "red"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	_, err = pages.Open(ctx, session.Context{Role: domain.RoleSuperAdmin, Subject: superAdmin.Subject}, "evaluated")
	assert.Equal(t, errors.MissingTokenMessage, errors.MessageOf(err, ""))
}

func TestPageService_SameSubjectOtherToken(t *testing.T) {
	b := new(mocks.Backend)
	b.On("FinalResults", mock.Anything, superAdmin, mock.Anything).
		Return([]domain.Team{{ID: 42, TeamName: "secret"}}, nil).Once()
	pages := newPageService(b)
	ctx := context.Background()

	_, err := pages.SetFilters(ctx, superAdmin, "evaluated", filter.State{filter.KeyParticipationCategory: "school"})
	require.NoError(t, err)
	require.Equal(t, filter.StageLoaded, settle(t, pages, "evaluated").Stage)

	other := superAdmin
	other.Token = "other-token"
	snap, err := pages.Open(ctx, other, "evaluated")
	require.NoError(t, err)
	assert.Equal(t, filter.StageNoDiscriminator, snap.Stage)
	assert.False(t, snap.HasData)
	assert.Empty(t, snap.Data.Groups)
	assert.False(t, pages.Close(other, "assignment"))
	assert.True(t, pages.Close(superAdmin, "evaluated"))
	b.AssertExpectations(t)
}

func TestPageService_CloseAll(t *testing.T) {
	pages := newPageService(new(mocks.Backend))
	ctx := context.Background()
	for _, p := range []string{"evaluated", "assignment"} {
		_, err := pages.Open(ctx, superAdmin, p)
		require.NoError(t, err)
	}
	assert.True(t, pages.Close(superAdmin, "assignment"))
	assert.False(t, pages.Close(superAdmin, "assignment"))
	assert.Equal(t, 1, pages.CloseAll(superAdmin))
}

func TestAuthService_Login(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "root@example.com",
		"role":  domain.RoleSuperAdmin,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	b := new(mocks.Backend)
	b.On("Login", mock.Anything, "root@example.com", "pw").Return(&backend.LoginResult{Token: token, Role: domain.RoleSuperAdmin}, nil).Once()
	b.On("Login", mock.Anything, "bad@example.com", "pw").Return(nil, errors.NewAuthenticationError("Invalid email or password")).Once()

	auth := service.NewAuthService(b, "secret", nil, nil)

	_, err = auth.Login(context.Background(), " ", "pw")
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	res, err := auth.Login(context.Background(), " root@example.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, token, res.Token)
	assert.True(t, res.Session.IsSuperAdmin())
	assert.Equal(t, "root@example.com", res.Session.Subject)

	_, err = auth.Login(context.Background(), "bad@example.com", "pw")
	assert.Equal(t, "Invalid email or password", errors.MessageOf(err, ""))
	b.AssertExpectations(t)
}
