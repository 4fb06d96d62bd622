package service

import (
	"context"

	"hackadmin/internal/backend"
	"hackadmin/internal/domain"
	"hackadmin/internal/session"
)

// Backend is the admin API surface the console depends on. *backend.Client
// implements it.
type Backend interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)

	ListTeams(ctx context.Context, sess session.Context, segment domain.TeamSegment, q backend.TeamQuery) (backend.Page[domain.Team], error)
	GetTeam(ctx context.Context, sess session.Context, id int) (*domain.Team, error)
	TeamsByDepartmentAndCategory(ctx context.Context, sess session.Context, q backend.AssignmentQuery) ([]domain.Team, error)
	AssignJudges(ctx context.Context, sess session.Context, q backend.AssignmentQuery, a domain.JudgeAssignment) (string, error)
	UnassignedTeams(ctx context.Context, sess session.Context) ([]domain.Team, error)
	MarkQualified(ctx context.Context, sess session.Context, teamID int) (string, error)

	ListUsers(ctx context.Context, sess session.Context, q backend.UserQuery) (backend.Page[domain.User], error)

	ListJudges(ctx context.Context, sess session.Context) ([]domain.Judge, error)
	CreateJudge(ctx context.Context, sess session.Context, j domain.NewJudge) (*domain.Judge, string, error)
	DeleteEvaluation(ctx context.Context, sess session.Context, evaluationID int, password string) (string, error)
	FinalResults(ctx context.Context, sess session.Context, q backend.ResultQuery) ([]domain.Team, error)

	ListPanels(ctx context.Context, sess session.Context, departments []string) ([]domain.Panel, error)
	PanelDetails(ctx context.Context, sess session.Context, panelID int) (*domain.PanelDetails, error)

	DashboardStats(ctx context.Context, sess session.Context) (*domain.DashboardStats, error)
	RegistrationStatus(ctx context.Context, sess session.Context) (*domain.RegistrationStatus, error)
	SetRegistrationStatus(ctx context.Context, sess session.Context, open bool) (string, error)
	Setting(ctx context.Context, sess session.Context) (*domain.Setting, error)
	UpdateSetting(ctx context.Context, sess session.Context, s domain.Setting) (string, error)
	ParticipantStats(ctx context.Context, sess session.Context) (*domain.ParticipantStats, error)
}

var _ Backend = (*backend.Client)(nil)

// Services aggregates every console service
type Services struct {
	Auth        *AuthService
	Teams       *TeamService
	Users       *UserService
	Assignments *AssignmentService
	Judges      *JudgeService
	Evaluations *EvaluationService
	Unassigned  *UnassignedService
	Panels      *PanelService
	Dashboard   *DashboardService
	Settings    *SettingsService
	Audit       *AuditService
	Pages       *PageService
	Cache       *CacheService
}

// Export is a rendered CSV download
type Export struct {
	Filename string
	Body     string
	Rows     int
}

// EmptyResultMessage is rendered when a valid query returns no rows
const EmptyResultMessage = "No records found, adjust filters"
