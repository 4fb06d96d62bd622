package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hackadmin/internal/domain"
	"hackadmin/internal/service"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// RosterHandler serves the team and user rosters and their exports
type RosterHandler struct {
	base
	teams *service.TeamService
	users *service.UserService
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(teams *service.TeamService, users *service.UserService, log *logger.Logger) *RosterHandler {
	return &RosterHandler{base: base{logger: log}, teams: teams, users: users}
}

func segmentParam(r *http.Request) (domain.TeamSegment, error) {
	raw := chi.URLParam(r, "segment")
	seg, ok := domain.ParseTeamSegment(raw)
	if !ok {
		return "", errors.NewNotFoundError("Unknown team segment: " + raw)
	}
	return seg, nil
}

// ListTeams handles GET /api/console/teams/{segment}
func (h *RosterHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	seg, err := segmentParam(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	res, err := h.teams.List(r.Context(), sess, seg, service.TeamQueryFromValues(r.URL.Query()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondList(h.base, w, res)
}

// ExportTeams handles GET /api/console/teams/{segment}/export.csv
func (h *RosterHandler) ExportTeams(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	seg, err := segmentParam(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	exp, err := h.teams.Export(r.Context(), sess, seg, service.TeamQueryFromValues(r.URL.Query()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondCSV(w, exp)
}

// GetTeam handles GET /api/console/team/{id}
func (h *RosterHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	id, err := intParam(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	team, err := h.teams.Get(r.Context(), sess, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondData(w, team, "")
}

// ListUsers handles GET /api/console/users
func (h *RosterHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	res, err := h.users.List(r.Context(), sess, service.UserQueryFromValues(r.URL.Query()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondList(h.base, w, res)
}

// ExportUsers handles GET /api/console/users/export.csv
func (h *RosterHandler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	exp, err := h.users.Export(r.Context(), sess, service.UserQueryFromValues(r.URL.Query()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondCSV(w, exp)
}
