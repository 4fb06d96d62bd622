package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// SessionParser turns a bearer token into a session
type SessionParser interface {
	Session(token string) (session.Context, error)
}

// Auth requires a bearer token and puts the parsed session on the request
// context. Expired tokens are rejected before the backend sees them.
func Auth(parser SessionParser, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := session.FromHeader(r.Header.Get("Authorization"))
			if !ok {
				WriteError(w, r, errors.NewMissingAuthError(), log)
				return
			}

			sess, err := parser.Session(token)
			if err != nil {
				WriteError(w, r, err, log)
				return
			}
			if sess.Expired(time.Now()) {
				WriteError(w, r, errors.NewAuthenticationError("Session expired. Please login again."), log)
				return
			}

			log.WithFields(map[string]interface{}{
				"subject": sess.Subject,
				"role":    sess.Role,
			}).Debug("Admin authenticated")

			next.ServeHTTP(w, r.WithContext(session.With(r.Context(), sess)))
		})
	}
}

// RequestID reuses an inbound X-Request-ID or generates a UUID
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request id set by RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}

// WriteError renders err in the standard error envelope. Errors that are not
// AppErrors are reported as internal without leaking their text.
func WriteError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError("Internal server error", err)
	}

	entry := log.WithError(err).WithFields(map[string]interface{}{
		"request_id": GetRequestID(r.Context()),
		"path":       r.URL.Path,
		"status":     appErr.StatusCode,
	})
	if appErr.StatusCode >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.RequestID = GetRequestID(r.Context())
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Error("Failed to encode error response")
	}
}
