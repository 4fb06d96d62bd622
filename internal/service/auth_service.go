package service

import (
	"context"
	"strings"

	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token   string          `json:"token"`
	Session session.Context `json:"session"`
	Message string          `json:"message,omitempty"`
}

// AuthService exchanges admin credentials for a session
type AuthService struct {
	backend   Backend
	jwtSecret string
	pages     *PageService
	logger    *logger.Logger
}

func NewAuthService(b Backend, jwtSecret string, pages *PageService, log *logger.Logger) *AuthService {
	return &AuthService{backend: b, jwtSecret: jwtSecret, pages: pages, logger: named(log, "auth")}
}

// Login authenticates against the admin backend and parses the returned
// token. The role from the login response wins when the token carries none.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.NewValidationError("Email and password are required", nil)
	}

	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.logger.WithError(err).WithField("email", email).Warn("Admin login failed")
		return nil, err
	}

	sess, err := session.Parse(res.Token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if sess.Role == "" {
		sess.Role = res.Role
	}
	if sess.Subject == "anonymous" {
		sess.Subject = email
	}

	s.logger.WithFields(map[string]interface{}{
		"subject": sess.Subject,
		"role":    sess.Role,
	}).Info("Admin logged in")
	return &LoginResponse{Token: res.Token, Session: sess, Message: res.Message}, nil
}

// Session validates a bearer token
func (s *AuthService) Session(token string) (session.Context, error) {
	return session.Parse(token, s.jwtSecret)
}

// Logout forgets the subject's page instances. Tokens are stateless, so
// there is nothing to revoke upstream.
func (s *AuthService) Logout(sess session.Context) int {
	if s.pages == nil {
		return 0
	}
	n := s.pages.CloseAll(sess)
	s.logger.WithFields(map[string]interface{}{
		"subject": sess.Subject,
		"pages":   n,
	}).Info("Admin logged out")
	return n
}
