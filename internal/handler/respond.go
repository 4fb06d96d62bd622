package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hackadmin/internal/middleware"
	"hackadmin/internal/service"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// Response is the success envelope, shaped like the admin backend's own
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data"`
	Total      *int        `json:"total,omitempty"`
	TotalPages *int        `json:"totalPages,omitempty"`
	Page       *int        `json:"page,omitempty"`
	Limit      *int        `json:"limit,omitempty"`
	Summary    string      `json:"summary,omitempty"`
}

type base struct {
	logger *logger.Logger
}

func (b base) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		b.logger.WithError(err).Error("Failed to encode response")
	}
}

func (b base) respondData(w http.ResponseWriter, data interface{}, message string) {
	b.respondJSON(w, http.StatusOK, Response{Success: true, Data: data, Message: message})
}

// respondMessage renders a mutation result
func (b base) respondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	b.respondJSON(w, status, Response{Success: true, Message: message, Data: data})
}

func respondList[T any](b base, w http.ResponseWriter, res service.ListResult[T]) {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	b.respondJSON(w, http.StatusOK, Response{
		Success:    true,
		Message:    res.Message,
		Data:       items,
		Total:      &res.Total,
		TotalPages: &res.TotalPages,
		Page:       &res.Page,
		Limit:      &res.Limit,
		Summary:    res.Summary,
	})
}

// respondSlice renders a plain list, with the empty-result message when empty
func respondSlice[T any](b base, w http.ResponseWriter, items []T) {
	msg := ""
	if len(items) == 0 {
		items = []T{}
		msg = service.EmptyResultMessage
	}
	b.respondData(w, items, msg)
}

func (b base) respondError(w http.ResponseWriter, r *http.Request, err error) {
	middleware.WriteError(w, r, err, b.logger)
}

// respondCSV streams an export as an attachment
func (b base) respondCSV(w http.ResponseWriter, exp *service.Export) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.Filename))
	w.Header().Set("X-Export-Rows", strconv.Itoa(exp.Rows))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, exp.Body); err != nil {
		b.logger.WithError(err).Error("Failed to write CSV export")
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.NewValidationError("Invalid request body", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

// sessionOf returns the session put on the context by the auth middleware
func sessionOf(r *http.Request) (session.Context, error) {
	return session.MustFromContext(r.Context())
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.NewValidationError("Invalid "+name, map[string]interface{}{name: raw})
	}
	return n, nil
}

func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func errValidation(msg string) error {
	return errors.NewValidationError(msg, nil)
}
