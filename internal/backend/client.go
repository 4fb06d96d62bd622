// Package backend is the HTTP client for the external admin REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hackadmin/internal/config"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// Client calls the admin backend. It holds no session; every call takes
// one explicitly.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a client from configuration
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return New(cfg.BackendBaseURL, cfg.BackendTimeout, log)
}

// New creates a client for baseURL
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.Named("backend"),
	}
}

// BaseURL returns the backend root the client talks to
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the common response wrapper of the admin API
type envelope struct {
	Success    *bool           `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Total      int             `json:"total"`
	TotalPages int             `json:"totalPages"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

// call describes one request to the backend
type call struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	action string
	// anonymous calls skip the token check (login)
	anonymous bool
}

// do performs the request and returns the decoded envelope. Failures are
// mapped to transport or backend AppErrors carrying a user-visible message.
func (c *Client) do(ctx context.Context, sess session.Context, cl call, out interface{}) (*envelope, []byte, error) {
	if !cl.anonymous {
		if err := sess.Require(); err != nil {
			return nil, nil, err
		}
	}

	fallback := "failed to " + cl.action
	endpoint := c.baseURL + cl.path
	if len(cl.query) > 0 {
		endpoint += "?" + cl.query.Encode()
	}

	var reader io.Reader
	if cl.body != nil {
		jsonBody, err := json.Marshal(cl.body)
		if err != nil {
			return nil, nil, errors.NewInternalError(fallback, fmt.Errorf("failed to marshal request body: %w", err))
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, endpoint, reader)
	if err != nil {
		return nil, nil, errors.NewInternalError(fallback, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"method": cl.method,
			"path":   cl.path,
		}).Error("Backend request failed")
		return nil, nil, errors.NewTransportError(fallback, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.NewTransportError(fallback, fmt.Errorf("failed to read response body: %w", err))
	}

	c.logger.WithFields(map[string]interface{}{
		"method":      cl.method,
		"path":        cl.path,
		"status_code": resp.StatusCode,
		"duration":    time.Since(start).String(),
	}).Debug("Backend request completed")

	var env envelope
	decodeErr := json.Unmarshal(body, &env)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if !ok {
		msg := fallback
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		return nil, body, errors.NewBackendError(msg, resp.StatusCode)
	}
	if decodeErr != nil {
		c.logger.WithFields(map[string]interface{}{
			"response_body": truncate(string(body), 512),
			"status_code":   resp.StatusCode,
		}).Error("Failed to parse backend response")
		return nil, body, errors.NewBackendError(fallback, resp.StatusCode)
	}
	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = fallback
		}
		return nil, body, errors.NewBackendError(msg, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.logger.WithError(err).WithField("path", cl.path).Error("Failed to decode backend data")
			return nil, body, errors.NewBackendError(fallback, resp.StatusCode)
		}
	}
	return &env, body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// setIf adds key to q when value is non-empty
func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// Page is a paginated list response
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// Summary renders "{from} to {to} of {total}" for the pagination footer
func (p Page[T]) Summary() string {
	if p.Total == 0 || len(p.Items) == 0 {
		return "0 to 0 of 0"
	}
	page, limit := p.Page, p.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = len(p.Items)
	}
	from := (page-1)*limit + 1
	to := page * limit
	if to > p.Total {
		to = p.Total
	}
	return fmt.Sprintf("%d to %d of %d", from, to, p.Total)
}

func pageFrom[T any](env *envelope, items []T, page, limit int) Page[T] {
	p := Page[T]{
		Items:      items,
		Total:      env.Total,
		TotalPages: env.TotalPages,
		Page:       env.Page,
		Limit:      env.Limit,
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	if p.Page == 0 {
		p.Page = page
	}
	if p.Limit == 0 {
		p.Limit = limit
	}
	if p.Total == 0 && len(items) > 0 {
		p.Total = len(items)
	}
	if p.TotalPages == 0 && p.Total > 0 && p.Limit > 0 {
		p.TotalPages = (p.Total + p.Limit - 1) / p.Limit
	}
	return p
}
