package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"hackadmin/internal/domain"
	"hackadmin/internal/session"
)

// ListJudges fetches every judge
func (c *Client) ListJudges(ctx context.Context, sess session.Context) ([]domain.Judge, error) {
	var judges []domain.Judge
	_, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/admin/judges",
		action: "fetch judges",
	}, &judges)
	if err != nil {
		return nil, err
	}
	if judges == nil {
		judges = []domain.Judge{}
	}
	return judges, nil
}

// CreateJudge registers a judge
func (c *Client) CreateJudge(ctx context.Context, sess session.Context, j domain.NewJudge) (*domain.Judge, string, error) {
	var created domain.Judge
	env, _, err := c.do(ctx, sess, call{
		method: http.MethodPost,
		path:   "/api/admin/judges",
		body:   j,
		action: "create judge",
	}, &created)
	if err != nil {
		return nil, "", err
	}
	if created.ID == 0 && created.Email == "" {
		return nil, env.Message, nil
	}
	return &created, env.Message, nil
}

// DeleteEvaluation removes an evaluation; the backend demands the admin
// password as confirmation
func (c *Client) DeleteEvaluation(ctx context.Context, sess session.Context, evaluationID int, password string) (string, error) {
	env, _, err := c.do(ctx, sess, call{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/admin/evaluation/%d/%s", evaluationID, url.PathEscape(password)),
		action: "delete evaluation",
	}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// ResultQuery selects the final results to fetch
type ResultQuery struct {
	ParticipationCategory string
	CategoryID            string
}

// FinalResults fetches the flat list of evaluated teams
func (c *Client) FinalResults(ctx context.Context, sess session.Context, q ResultQuery) ([]domain.Team, error) {
	v := url.Values{}
	setIf(v, "participationCategory", q.ParticipationCategory)
	setIf(v, "categoryId", q.CategoryID)

	var teams []domain.Team
	_, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/admin/finalresult",
		query:  v,
		action: "fetch final results",
	}, &teams)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []domain.Team{}
	}
	return teams, nil
}

// ListPanels lists panels, optionally scoped to departments
func (c *Client) ListPanels(ctx context.Context, sess session.Context, departments []string) ([]domain.Panel, error) {
	v := url.Values{}
	if len(departments) > 0 {
		v.Set("department", strings.Join(departments, ","))
	}

	var panels []domain.Panel
	_, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/admin/getpanellists",
		query:  v,
		action: "fetch panels",
	}, &panels)
	if err != nil {
		return nil, err
	}
	if panels == nil {
		panels = []domain.Panel{}
	}
	return panels, nil
}

// PanelDetails fetches a panel with its teams and judges
func (c *Client) PanelDetails(ctx context.Context, sess session.Context, panelID int) (*domain.PanelDetails, error) {
	var d domain.PanelDetails
	_, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/admin/getpanelteamsandjudges/%d", panelID),
		action: "fetch panel details",
	}, &d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
