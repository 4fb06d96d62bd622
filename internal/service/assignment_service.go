package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"hackadmin/internal/backend"
	"hackadmin/internal/csvexport"
	"hackadmin/internal/domain"
	"hackadmin/internal/filter"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// AssignmentService lists teams awaiting a panel and assigns judges to them
type AssignmentService struct {
	backend Backend
	cache   *CacheService
	audit   *AuditService
	logger  *logger.Logger
	now     func() time.Time
}

func NewAssignmentService(b Backend, cache *CacheService, audit *AuditService, log *logger.Logger) *AssignmentService {
	return &AssignmentService{backend: b, cache: cache, audit: audit, logger: named(log, "assignments"), now: time.Now}
}

// assignmentSchema picks the legacy department schema when a department is
// given, the participation schema otherwise
func assignmentSchema(q backend.AssignmentQuery) filter.Schema {
	if q.Department != "" {
		return filter.AssignmentSchema
	}
	return filter.ParticipationAssignmentSchema
}

// AssignmentQueryFromState converts filter state to a backend query
func AssignmentQueryFromState(st filter.State) backend.AssignmentQuery {
	return backend.AssignmentQuery{
		Department:            st[filter.KeyDepartment],
		ParticipationCategory: st[filter.KeyParticipationCategory],
		CategoryID:            st[filter.KeyCategory],
		Status:                st[filter.KeyStatus],
	}
}

// checkAssignmentQuery runs the cascading filter rules and returns the
// completed query, or a validation error carrying the guidance prompt
func checkAssignmentQuery(q backend.AssignmentQuery) (backend.AssignmentQuery, error) {
	if q.Department != "" && !domain.IsDepartmentList(q.Department) {
		return q, errors.NewValidationError("Unknown department", map[string]interface{}{"department": q.Department})
	}
	if q.ParticipationCategory != "" && !domain.IsParticipationCategory(q.ParticipationCategory) {
		return q, errors.NewValidationError("Unknown participation category", map[string]interface{}{"participationCategory": q.ParticipationCategory})
	}

	schema := assignmentSchema(q)
	st := filter.State{}
	for k, v := range map[string]string{
		filter.KeyDepartment:            q.Department,
		filter.KeyParticipationCategory: q.ParticipationCategory,
		filter.KeyCategory:              q.CategoryID,
		filter.KeyStatus:                q.Status,
	} {
		if v != "" {
			st[k] = v
		}
	}
	d := filter.Evaluate(schema, st)
	if !d.Fetch {
		return q, errors.NewValidationError(d.Prompt, map[string]interface{}{"stage": d.Stage})
	}
	return AssignmentQueryFromState(filter.State{
		filter.KeyDepartment:            d.Query.Get(filter.KeyDepartment),
		filter.KeyParticipationCategory: d.Query.Get(filter.KeyParticipationCategory),
		filter.KeyCategory:              d.Query.Get(filter.KeyCategory),
		filter.KeyStatus:                d.Query.Get(filter.KeyStatus),
	}), nil
}

// Teams lists teams matching the assignment filters
func (s *AssignmentService) Teams(ctx context.Context, sess session.Context, q backend.AssignmentQuery) ([]domain.Team, error) {
	q, err := checkAssignmentQuery(q)
	if err != nil {
		return nil, err
	}
	return s.backend.TeamsByDepartmentAndCategory(ctx, sess, q)
}

// ValidateAssignment checks an assignment request: two or three distinct
// judges, at least one team and a panel name
func ValidateAssignment(a domain.JudgeAssignment) (domain.JudgeAssignment, error) {
	a.PanelName = strings.TrimSpace(a.PanelName)

	ids := a.JudgeIDs()
	seen := map[int]bool{}
	for _, id := range ids {
		if id <= 0 {
			return a, errors.NewValidationError("Please select at least 2 judges", nil)
		}
		if seen[id] {
			return a, errors.NewValidationError("The same judge cannot be selected twice", map[string]interface{}{"judgeId": id})
		}
		seen[id] = true
	}
	if len(a.TeamIDs) == 0 {
		return a, errors.NewValidationError("Please select at least one team", nil)
	}
	if a.PanelName == "" {
		return a, errors.NewValidationError("Panel name is required", nil)
	}
	return a, nil
}

// Assign submits a judge assignment for the teams of the filter
func (s *AssignmentService) Assign(ctx context.Context, sess session.Context, q backend.AssignmentQuery, a domain.JudgeAssignment) (string, error) {
	q, err := checkAssignmentQuery(q)
	if err != nil {
		return "", err
	}
	a, err = ValidateAssignment(a)
	if err != nil {
		return "", err
	}

	msg, err := s.backend.AssignJudges(ctx, sess, q, a)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Judges assigned successfully"
	}

	if keys := s.cache.Keys(); keys != nil {
		s.cache.InvalidatePattern(ctx, keys.PatternPanels())
	}

	judgeIDs := make([]string, 0, 3)
	for _, id := range a.JudgeIDs() {
		judgeIDs = append(judgeIDs, strconv.Itoa(id))
	}
	s.audit.Record(ctx, sess, domain.ActionAssignJudges, "panel:"+a.PanelName, map[string]string{
		"judges": strings.Join(judgeIDs, ","),
		"teams":  itoa(len(a.TeamIDs)),
	})
	return msg, nil
}

// Export renders the judge-assignment export of the filtered teams
func (s *AssignmentService) Export(ctx context.Context, sess session.Context, q backend.AssignmentQuery) (*Export, error) {
	teams, err := s.Teams(ctx, sess, q)
	if err != nil {
		return nil, err
	}
	exp := &Export{
		Filename: csvexport.Filename("assignment", s.now()),
		Body:     csvexport.Encode(teams, csvexport.AssignmentColumns),
		Rows:     len(teams),
	}
	s.audit.Record(ctx, sess, domain.ActionExport, "assignment", map[string]string{"rows": itoa(exp.Rows)})
	return exp, nil
}
