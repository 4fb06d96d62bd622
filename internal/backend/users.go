package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"hackadmin/internal/domain"
	"hackadmin/internal/session"
)

// UserQuery filters the user roster
type UserQuery struct {
	Page                  int
	Limit                 int
	Department            string
	ParticipationCategory string
	Type                  string
	UserID                string
	TeamCode              string
}

// Values encodes the query; empty filters are left out
func (q UserQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	setIf(v, "department", q.Department)
	setIf(v, "participationCategory", q.ParticipationCategory)
	setIf(v, "type", q.Type)
	setIf(v, "userId", q.UserID)
	setIf(v, "teamCode", q.TeamCode)
	return v
}

// ListUsers fetches one page of users
func (c *Client) ListUsers(ctx context.Context, sess session.Context, q UserQuery) (Page[domain.User], error) {
	var users []domain.User
	env, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/admin/users",
		query:  q.Values(),
		action: "fetch users",
	}, &users)
	if err != nil {
		return Page[domain.User]{}, err
	}
	return pageFrom(env, users, q.Page, q.Limit), nil
}
