package service

import (
	"context"
	"strings"
	"time"

	"hackadmin/internal/backend"
	"hackadmin/internal/csvexport"
	"hackadmin/internal/domain"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// ListResult is a rendered page of a roster
type ListResult[T any] struct {
	Items      []T    `json:"items"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Summary    string `json:"summary"`
	Message    string `json:"message,omitempty"`
}

func listResult[T any](p backend.Page[T]) ListResult[T] {
	r := ListResult[T]{
		Items:      p.Items,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		Page:       p.Page,
		Limit:      p.Limit,
		Summary:    p.Summary(),
	}
	if len(r.Items) == 0 {
		r.Message = EmptyResultMessage
	}
	return r
}

// TeamService serves the team roster pages
type TeamService struct {
	backend Backend
	audit   *AuditService
	logger  *logger.Logger
	now     func() time.Time
}

func NewTeamService(b Backend, audit *AuditService, log *logger.Logger) *TeamService {
	return &TeamService{backend: b, audit: audit, logger: named(log, "teams"), now: time.Now}
}

// normalizeTeamQuery drops college-only filters on other segments and
// validates department codes
func normalizeTeamQuery(segment domain.TeamSegment, q backend.TeamQuery) (backend.TeamQuery, error) {
	if !segment.IsCollege() {
		q.Department = ""
		q.IsKietian = ""
	}
	if q.Department != "" && !domain.IsDepartmentList(q.Department) {
		return q, errors.NewValidationError("Unknown department", map[string]interface{}{"department": q.Department})
	}
	if q.Status == "all" {
		q.Status = ""
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	q.TeamCode = strings.TrimSpace(q.TeamCode)
	return q, nil
}

// List fetches one page of teams of a segment
func (s *TeamService) List(ctx context.Context, sess session.Context, segment domain.TeamSegment, q backend.TeamQuery) (ListResult[domain.Team], error) {
	q, err := normalizeTeamQuery(segment, q)
	if err != nil {
		return ListResult[domain.Team]{}, err
	}
	page, err := s.backend.ListTeams(ctx, sess, segment, q)
	if err != nil {
		return ListResult[domain.Team]{}, err
	}
	return listResult(page), nil
}

// Get fetches one team
func (s *TeamService) Get(ctx context.Context, sess session.Context, id int) (*domain.Team, error) {
	if id <= 0 {
		return nil, errors.NewValidationError("Invalid team id", nil)
	}
	return s.backend.GetTeam(ctx, sess, id)
}

// All walks every page of a segment
func (s *TeamService) All(ctx context.Context, sess session.Context, segment domain.TeamSegment, q backend.TeamQuery) ([]domain.Team, error) {
	q, err := normalizeTeamQuery(segment, q)
	if err != nil {
		return nil, err
	}
	q.Limit = exportPageSize

	var teams []domain.Team
	for q.Page = 1; ; q.Page++ {
		page, err := s.backend.ListTeams(ctx, sess, segment, q)
		if err != nil {
			return nil, err
		}
		teams = append(teams, page.Items...)
		if len(page.Items) == 0 || q.Page >= page.TotalPages {
			break
		}
		if q.Page >= maxExportPages {
			s.logger.WithFields(map[string]interface{}{
				"rows":       len(teams),
				"totalPages": page.TotalPages,
			}).Warn("Export exceeds the row cap")
			return nil, errExportTooLarge("teams", page.TotalPages)
		}
	}
	return teams, nil
}

// Export renders the full filtered roster of a segment, sorted by category
// then team code
func (s *TeamService) Export(ctx context.Context, sess session.Context, segment domain.TeamSegment, q backend.TeamQuery) (*Export, error) {
	teams, err := s.All(ctx, sess, segment, q)
	if err != nil {
		return nil, err
	}
	csvexport.SortTeamsByCategoryThenCode(teams)

	exp := &Export{
		Filename: csvexport.Filename("teams-"+segment.Slug(), s.now()),
		Body:     csvexport.Encode(teams, csvexport.TeamColumns),
		Rows:     len(teams),
	}
	s.audit.Record(ctx, sess, domain.ActionExport, "teams:"+string(segment), map[string]string{"rows": itoa(exp.Rows)})
	return exp, nil
}
