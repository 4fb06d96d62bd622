package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hackadmin/internal/domain"
	"hackadmin/internal/session"
)

// TeamQuery filters a team roster listing
type TeamQuery struct {
	Page            int
	Limit           int
	Department      string
	Status          string
	IsCompleted     string
	IsKietian       string
	CategoryID      string
	QualifiedStatus string
	TeamCode        string
}

// Values encodes the query; empty filters are left out
func (q TeamQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	setIf(v, "department", q.Department)
	setIf(v, "status", q.Status)
	setIf(v, "isCompleted", q.IsCompleted)
	setIf(v, "isKeitian", q.IsKietian)
	setIf(v, "categoryId", q.CategoryID)
	setIf(v, "qulifiedStatus", q.QualifiedStatus)
	setIf(v, "teamCode", q.TeamCode)
	return v
}

// ListTeams fetches one page of a team segment
func (c *Client) ListTeams(ctx context.Context, sess session.Context, segment domain.TeamSegment, q TeamQuery) (Page[domain.Team], error) {
	var teams []domain.Team
	env, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/admin/teams/" + string(segment),
		query:  q.Values(),
		action: "fetch teams",
	}, &teams)
	if err != nil {
		return Page[domain.Team]{}, err
	}
	return pageFrom(env, teams, q.Page, q.Limit), nil
}

// GetTeam fetches a single team with its relations
func (c *Client) GetTeam(ctx context.Context, sess session.Context, id int) (*domain.Team, error) {
	var team domain.Team
	_, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/admin/teams/%d", id),
		action: "fetch team details",
	}, &team)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// AssignmentQuery selects teams for panel assignment. Exactly one of
// Department or ParticipationCategory is expected.
type AssignmentQuery struct {
	Department            string
	ParticipationCategory string
	CategoryID            string
	Status                string
}

// Values encodes the query
func (q AssignmentQuery) Values() url.Values {
	v := url.Values{}
	setIf(v, "participationCategory", q.ParticipationCategory)
	setIf(v, "department", q.Department)
	setIf(v, "categoryId", q.CategoryID)
	setIf(v, "status", q.Status)
	return v
}

// TeamsByDepartmentAndCategory lists teams for the assignment and
// evaluated pages
func (c *Client) TeamsByDepartmentAndCategory(ctx context.Context, sess session.Context, q AssignmentQuery) ([]domain.Team, error) {
	var teams []domain.Team
	_, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/admin/getbydepartmentandcategory",
		query:  q.Values(),
		action: "fetch teams",
	}, &teams)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []domain.Team{}
	}
	return teams, nil
}

// AssignJudges assigns a panel of judges to the selected teams and returns
// the backend's confirmation message
func (c *Client) AssignJudges(ctx context.Context, sess session.Context, q AssignmentQuery, a domain.JudgeAssignment) (string, error) {
	env, _, err := c.do(ctx, sess, call{
		method: http.MethodPut,
		path:   "/api/admin/assigjudgebydepartmentandcategory",
		query:  q.Values(),
		body:   a,
		action: "assign judges",
	}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// UnassignedTeams lists teams without a panel
func (c *Client) UnassignedTeams(ctx context.Context, sess session.Context) ([]domain.Team, error) {
	var teams []domain.Team
	_, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/admin/unassignedteams",
		action: "fetch unassigned teams",
	}, &teams)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []domain.Team{}
	}
	return teams, nil
}

// MarkQualified marks a team as department qualified
func (c *Client) MarkQualified(ctx context.Context, sess session.Context, teamID int) (string, error) {
	env, _, err := c.do(ctx, sess, call{
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/admin/teams/mark-qualified/%d", teamID),
		action: "mark team as qualified",
	}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
