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

// UserService serves the user roster
type UserService struct {
	backend Backend
	audit   *AuditService
	logger  *logger.Logger
	now     func() time.Time
}

func NewUserService(b Backend, audit *AuditService, log *logger.Logger) *UserService {
	return &UserService{backend: b, audit: audit, logger: named(log, "users"), now: time.Now}
}

// checkUserQuery enforces the role gate: department admins are scoped by the
// backend and may only search by user id or team code
func checkUserQuery(sess session.Context, q backend.UserQuery) (backend.UserQuery, error) {
	if !sess.IsSuperAdmin() && (q.Department != "" || q.ParticipationCategory != "" || q.Type != "") {
		return q, errors.NewAuthorizationError("Only super admins can filter by department, participation category or type")
	}
	if q.Department != "" && !domain.IsDepartmentList(q.Department) {
		return q, errors.NewValidationError("Unknown department", map[string]interface{}{"department": q.Department})
	}
	if q.ParticipationCategory != "" && !domain.IsParticipationCategory(q.ParticipationCategory) {
		return q, errors.NewValidationError("Unknown participation category", map[string]interface{}{"participationCategory": q.ParticipationCategory})
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	q.UserID = strings.TrimSpace(q.UserID)
	q.TeamCode = strings.TrimSpace(q.TeamCode)
	return q, nil
}

// List fetches one page of users
func (s *UserService) List(ctx context.Context, sess session.Context, q backend.UserQuery) (ListResult[domain.User], error) {
	q, err := checkUserQuery(sess, q)
	if err != nil {
		return ListResult[domain.User]{}, err
	}
	page, err := s.backend.ListUsers(ctx, sess, q)
	if err != nil {
		return ListResult[domain.User]{}, err
	}
	return listResult(page), nil
}

// Export renders every matching user, sorted by student year
func (s *UserService) Export(ctx context.Context, sess session.Context, q backend.UserQuery) (*Export, error) {
	q, err := checkUserQuery(sess, q)
	if err != nil {
		return nil, err
	}
	q.Limit = exportPageSize

	var users []domain.User
	for q.Page = 1; ; q.Page++ {
		page, err := s.backend.ListUsers(ctx, sess, q)
		if err != nil {
			return nil, err
		}
		users = append(users, page.Items...)
		if len(page.Items) == 0 || q.Page >= page.TotalPages {
			break
		}
		if q.Page >= maxExportPages {
			s.logger.WithFields(map[string]interface{}{
				"rows":       len(users),
				"totalPages": page.TotalPages,
			}).Warn("Export exceeds the row cap")
			return nil, errExportTooLarge("users", page.TotalPages)
		}
	}
	csvexport.SortUsersByYear(users)

	exp := &Export{
		Filename: csvexport.Filename("users", s.now()),
		Body:     csvexport.Encode(users, csvexport.UserColumns),
		Rows:     len(users),
	}
	s.audit.Record(ctx, sess, domain.ActionExport, "users", map[string]string{"rows": itoa(exp.Rows)})
	return exp, nil
}
