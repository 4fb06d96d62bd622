package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"hackadmin/internal/domain"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
)

// LoginResult is the outcome of a successful admin login
type LoginResult struct {
	Token   string
	Role    string
	Message string
}

// Login exchanges credentials for an admin token
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	_, body, err := c.do(ctx, session.Context{}, call{
		method:    http.MethodPost,
		path:      "/api/admin/login",
		body:      map[string]string{"email": email, "password": password},
		action:    "log in",
		anonymous: true,
	}, nil)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeBackend) && errors.MessageOf(err, "") == "failed to log in" {
			return nil, errors.NewAuthenticationError("Invalid email or password")
		}
		return nil, err
	}

	var resp struct {
		Token   string `json:"token"`
		Message string `json:"message"`
		Admin   struct {
			Role string `json:"role"`
		} `json:"admin"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
		return nil, errors.NewAuthenticationError("Invalid email or password")
	}
	return &LoginResult{Token: resp.Token, Role: resp.Admin.Role, Message: resp.Message}, nil
}

// DashboardStats fetches the dashboard totals
func (c *Client) DashboardStats(ctx context.Context, sess session.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	_, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/admin/dashboard/stats",
		action: "fetch dashboard stats",
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// RegistrationStatus reports whether registration is open
func (c *Client) RegistrationStatus(ctx context.Context, sess session.Context) (*domain.RegistrationStatus, error) {
	var status domain.RegistrationStatus
	_, body, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/registration/status",
		action: "fetch registration status",
	}, &status)
	if err != nil {
		return nil, err
	}
	// some deployments answer {success, isOpen} without a data wrapper
	var flat struct {
		IsOpen *bool `json:"isOpen"`
	}
	if json.Unmarshal(body, &flat) == nil && flat.IsOpen != nil {
		status.IsOpen = *flat.IsOpen
	}
	return &status, nil
}

// SetRegistrationStatus opens or closes registration
func (c *Client) SetRegistrationStatus(ctx context.Context, sess session.Context, open bool) (string, error) {
	env, _, err := c.do(ctx, sess, call{
		method: http.MethodPut,
		path:   "/api/registration/status",
		body:   domain.RegistrationStatus{IsOpen: open},
		action: "update registration status",
	}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Setting fetches the public stats setting
func (c *Client) Setting(ctx context.Context, sess session.Context) (*domain.Setting, error) {
	var s domain.Setting
	_, _, err := c.do(ctx, sess, call{
		method: http.MethodGet,
		path:   "/api/admin/setting",
		action: "fetch settings",
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSetting writes the public stats setting
func (c *Client) UpdateSetting(ctx context.Context, sess session.Context, s domain.Setting) (string, error) {
	env, _, err := c.do(ctx, sess, call{
		method: http.MethodPut,
		path:   "/api/admin/setting",
		body:   s,
		action: "update settings",
	}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// ParticipantStats fetches the public stats as currently displayed
func (c *Client) ParticipantStats(ctx context.Context, sess session.Context) (*domain.ParticipantStats, error) {
	var stats domain.ParticipantStats
	_, _, err := c.do(ctx, sess, call{
		method:    http.MethodGet,
		path:      "/api/participantsstats",
		action:    "fetch stats configuration",
		anonymous: true,
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
