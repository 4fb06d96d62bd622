package service

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"hackadmin/internal/backend"
	"hackadmin/internal/domain"
	"hackadmin/internal/filter"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// PageData is the list a page instance renders. Exactly one field is set,
// depending on the page.
type PageData struct {
	Teams   *ListResult[domain.Team] `json:"teams,omitempty"`
	Users   *ListResult[domain.User] `json:"users,omitempty"`
	Groups  []domain.CategoryGroup   `json:"groups,omitempty"`
	Pending []domain.Team            `json:"pending,omitempty"`
	Message string                   `json:"message,omitempty"`
}

// PageSnapshot is the rendered state of one page instance
type PageSnapshot = filter.Snapshot[PageData]

// PageService keeps a cascading filter controller per admin and page, so
// the console can commit one filter at a time and poll for the result.
type PageService struct {
	registry    *filter.Registry[PageData]
	teams       *TeamService
	users       *UserService
	assignments *AssignmentService
	evaluations *EvaluationService
	logger      *logger.Logger
}

func NewPageService(teams *TeamService, users *UserService, assignments *AssignmentService, evaluations *EvaluationService, ttl time.Duration, log *logger.Logger) *PageService {
	return &PageService{
		registry:    filter.NewRegistry[PageData](ttl),
		teams:       teams,
		users:       users,
		assignments: assignments,
		evaluations: evaluations,
		logger:      named(log, "pages"),
	}
}

// Pages lists the pages that support filter sessions
func (s *PageService) Pages() []string {
	return filter.Pages()
}

// detach keeps the session on ctx but drops its cancellation, so a fetch
// outlives the request that committed the filter
func detach(ctx context.Context, sess session.Context) context.Context {
	return session.With(context.WithoutCancel(ctx), sess)
}

func (s *PageService) controller(ctx context.Context, sess session.Context, page string) (*filter.Controller[PageData], error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}
	schema, ok := filter.SchemaFor(page)
	if !ok {
		return nil, errors.NewNotFoundError("Unknown page: " + page)
	}
	c, created, err := s.registry.Get(sess.Key(), page, func() (*filter.Controller[PageData], error) {
		return filter.NewController(schema, s.fetcher(page), s.logger), nil
	})
	if err != nil {
		return nil, err
	}
	if created {
		c.Start(detach(ctx, sess))
	}
	return c, nil
}

// Open returns the page instance, creating it on first use
func (s *PageService) Open(ctx context.Context, sess session.Context, page string) (PageSnapshot, error) {
	c, err := s.controller(ctx, sess, page)
	if err != nil {
		return PageSnapshot{}, err
	}
	return c.Snapshot(), nil
}

// SetFilters commits values as one transition. Unknown keys are rejected.
func (s *PageService) SetFilters(ctx context.Context, sess session.Context, page string, values filter.State) (PageSnapshot, error) {
	c, err := s.controller(ctx, sess, page)
	if err != nil {
		return PageSnapshot{}, err
	}
	known := map[string]bool{}
	for _, k := range c.Schema().Keys() {
		known[k] = true
	}
	for _, k := range extraKeys(page) {
		known[k] = true
	}
	for k := range values {
		if !known[k] {
			return PageSnapshot{}, errors.NewValidationError("Unknown filter: "+k, map[string]interface{}{"page": page})
		}
	}
	return c.SetAll(detach(ctx, sess), values), nil
}

// extraKeys are free-form filters a page accepts beyond its schema
func extraKeys(page string) []string {
	switch page {
	case filter.TeamsSchema.Name:
		return []string{filter.KeyTeamCode, filter.KeyPage, filter.KeyLimit}
	case filter.UsersSchema.Name:
		return []string{filter.KeyDepartment, filter.KeyParticipationCategory, filter.KeyType, filter.KeyUserID, filter.KeyTeamCode, filter.KeyPage, filter.KeyLimit}
	case filter.AssignmentSchema.Name, filter.ParticipationAssignmentSchema.Name:
		return []string{filter.KeyStatus}
	}
	return nil
}

// Refresh re-fetches the page, typically after a mutation
func (s *PageService) Refresh(ctx context.Context, sess session.Context, page string) (PageSnapshot, error) {
	c, err := s.controller(ctx, sess, page)
	if err != nil {
		return PageSnapshot{}, err
	}
	return c.Refresh(detach(ctx, sess)), nil
}

// Settle waits for in-flight fetches of the page, bounded by ctx
func (s *PageService) Settle(ctx context.Context, sess session.Context, page string) (PageSnapshot, error) {
	c, err := s.controller(ctx, sess, page)
	if err != nil {
		return PageSnapshot{}, err
	}
	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	return c.Snapshot(), nil
}

// Close destroys the page instance
func (s *PageService) Close(sess session.Context, page string) bool {
	return s.registry.Drop(sess.Key(), page)
}

// CloseAll destroys every page instance of the session
func (s *PageService) CloseAll(sess session.Context) int {
	return s.registry.DropSubject(sess.Key())
}

// Sweep expires idle page instances
func (s *PageService) Sweep() int {
	n := s.registry.Sweep()
	if n > 0 {
		s.logger.WithField("expired", n).Debug("Expired idle page sessions")
	}
	return n
}

// RunSweeper expires idle page instances every interval until ctx ends
func (s *PageService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *PageService) fetcher(page string) filter.Fetcher[PageData] {
	return func(ctx context.Context, q url.Values) (PageData, error) {
		sess, err := session.MustFromContext(ctx)
		if err != nil {
			return PageData{}, err
		}
		switch page {
		case filter.TeamsSchema.Name:
			segment, ok := domain.ParseTeamSegment(q.Get(filter.KeySegment))
			if !ok {
				return PageData{}, errors.NewValidationError("Unknown team type", map[string]interface{}{"segment": q.Get(filter.KeySegment)})
			}
			res, err := s.teams.List(ctx, sess, segment, TeamQueryFromValues(q))
			if err != nil {
				return PageData{}, err
			}
			return PageData{Teams: &res, Message: res.Message}, nil

		case filter.UsersSchema.Name:
			res, err := s.users.List(ctx, sess, UserQueryFromValues(q))
			if err != nil {
				return PageData{}, err
			}
			return PageData{Users: &res, Message: res.Message}, nil

		case filter.EvaluatedSchema.Name:
			rq, err := ResultQueryFrom(q.Get(filter.KeyParticipationCategory), q.Get(filter.KeyCategory))
			if err != nil {
				return PageData{}, err
			}
			groups, err := s.evaluations.Results(ctx, sess, rq)
			if err != nil {
				return PageData{}, err
			}
			d := PageData{Groups: groups}
			if len(groups) == 0 {
				d.Message = EmptyResultMessage
			}
			return d, nil

		default:
			teams, err := s.assignments.Teams(ctx, sess, backend.AssignmentQuery{
				Department:            q.Get(filter.KeyDepartment),
				ParticipationCategory: q.Get(filter.KeyParticipationCategory),
				CategoryID:            q.Get(filter.KeyCategory),
				Status:                q.Get(filter.KeyStatus),
			})
			if err != nil {
				return PageData{}, err
			}
			d := PageData{Pending: teams}
			if len(teams) == 0 {
				d.Message = EmptyResultMessage
			}
			return d, nil
		}
	}
}

// TeamQueryFromValues reads a team roster query from filter values
func TeamQueryFromValues(q url.Values) backend.TeamQuery {
	return backend.TeamQuery{
		Page:            atoiOr(q.Get(filter.KeyPage), 1),
		Limit:           atoiOr(q.Get(filter.KeyLimit), 20),
		Department:      q.Get(filter.KeyDepartment),
		Status:          q.Get(filter.KeyStatus),
		IsCompleted:     q.Get(filter.KeyIsCompleted),
		IsKietian:       q.Get(filter.KeyIsKietian),
		CategoryID:      q.Get(filter.KeyCategory),
		QualifiedStatus: q.Get(filter.KeyQualifiedStatus),
		TeamCode:        q.Get(filter.KeyTeamCode),
	}
}

// UserQueryFromValues reads a user roster query from filter values
func UserQueryFromValues(q url.Values) backend.UserQuery {
	return backend.UserQuery{
		Page:                  atoiOr(q.Get(filter.KeyPage), 1),
		Limit:                 atoiOr(q.Get(filter.KeyLimit), 10),
		Department:            q.Get(filter.KeyDepartment),
		ParticipationCategory: q.Get(filter.KeyParticipationCategory),
		Type:                  q.Get(filter.KeyType),
		UserID:                q.Get(filter.KeyUserID),
		TeamCode:              q.Get(filter.KeyTeamCode),
	}
}

func atoiOr(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return fallback
}
