// Package mocks holds testify mocks of the service dependencies
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hackadmin/internal/backend"
	"hackadmin/internal/domain"
	"hackadmin/internal/session"
)

// Backend is a mock of service.Backend
type Backend struct {
	mock.Mock
}

func ret0[T any](args mock.Arguments) T {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T)
	}
	return zero
}

func (m *Backend) Login(ctx context.Context, email, password string) (*backend.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return ret0[*backend.LoginResult](args), args.Error(1)
}

func (m *Backend) ListTeams(ctx context.Context, sess session.Context, segment domain.TeamSegment, q backend.TeamQuery) (backend.Page[domain.Team], error) {
	args := m.Called(ctx, sess, segment, q)
	return ret0[backend.Page[domain.Team]](args), args.Error(1)
}

func (m *Backend) GetTeam(ctx context.Context, sess session.Context, id int) (*domain.Team, error) {
	args := m.Called(ctx, sess, id)
	return ret0[*domain.Team](args), args.Error(1)
}

func (m *Backend) TeamsByDepartmentAndCategory(ctx context.Context, sess session.Context, q backend.AssignmentQuery) ([]domain.Team, error) {
	args := m.Called(ctx, sess, q)
	return ret0[[]domain.Team](args), args.Error(1)
}

func (m *Backend) AssignJudges(ctx context.Context, sess session.Context, q backend.AssignmentQuery, a domain.JudgeAssignment) (string, error) {
	args := m.Called(ctx, sess, q, a)
	return args.String(0), args.Error(1)
}

func (m *Backend) UnassignedTeams(ctx context.Context, sess session.Context) ([]domain.Team, error) {
	args := m.Called(ctx, sess)
	return ret0[[]domain.Team](args), args.Error(1)
}

func (m *Backend) MarkQualified(ctx context.Context, sess session.Context, teamID int) (string, error) {
	args := m.Called(ctx, sess, teamID)
	return args.String(0), args.Error(1)
}

func (m *Backend) ListUsers(ctx context.Context, sess session.Context, q backend.UserQuery) (backend.Page[domain.User], error) {
	args := m.Called(ctx, sess, q)
	return ret0[backend.Page[domain.User]](args), args.Error(1)
}

func (m *Backend) ListJudges(ctx context.Context, sess session.Context) ([]domain.Judge, error) {
	args := m.Called(ctx, sess)
	return ret0[[]domain.Judge](args), args.Error(1)
}

func (m *Backend) CreateJudge(ctx context.Context, sess session.Context, j domain.NewJudge) (*domain.Judge, string, error) {
	args := m.Called(ctx, sess, j)
	return ret0[*domain.Judge](args), args.String(1), args.Error(2)
}

func (m *Backend) DeleteEvaluation(ctx context.Context, sess session.Context, evaluationID int, password string) (string, error) {
	args := m.Called(ctx, sess, evaluationID, password)
	return args.String(0), args.Error(1)
}

func (m *Backend) FinalResults(ctx context.Context, sess session.Context, q backend.ResultQuery) ([]domain.Team, error) {
	args := m.Called(ctx, sess, q)
	return ret0[[]domain.Team](args), args.Error(1)
}

func (m *Backend) ListPanels(ctx context.Context, sess session.Context, departments []string) ([]domain.Panel, error) {
	args := m.Called(ctx, sess, departments)
	return ret0[[]domain.Panel](args), args.Error(1)
}

func (m *Backend) PanelDetails(ctx context.Context, sess session.Context, panelID int) (*domain.PanelDetails, error) {
	args := m.Called(ctx, sess, panelID)
	return ret0[*domain.PanelDetails](args), args.Error(1)
}

func (m *Backend) DashboardStats(ctx context.Context, sess session.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx, sess)
	return ret0[*domain.DashboardStats](args), args.Error(1)
}

func (m *Backend) RegistrationStatus(ctx context.Context, sess session.Context) (*domain.RegistrationStatus, error) {
	args := m.Called(ctx, sess)
	return ret0[*domain.RegistrationStatus](args), args.Error(1)
}

func (m *Backend) SetRegistrationStatus(ctx context.Context, sess session.Context, open bool) (string, error) {
	args := m.Called(ctx, sess, open)
	return args.String(0), args.Error(1)
}

func (m *Backend) Setting(ctx context.Context, sess session.Context) (*domain.Setting, error) {
	args := m.Called(ctx, sess)
	return ret0[*domain.Setting](args), args.Error(1)
}

func (m *Backend) UpdateSetting(ctx context.Context, sess session.Context, s domain.Setting) (string, error) {
	args := m.Called(ctx, sess, s)
	return args.String(0), args.Error(1)
}

func (m *Backend) ParticipantStats(ctx context.Context, sess session.Context) (*domain.ParticipantStats, error) {
	args := m.Called(ctx, sess)
	return ret0[*domain.ParticipantStats](args), args.Error(1)
}
