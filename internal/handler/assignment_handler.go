package handler

import (
	"net/http"
	"net/url"

	"hackadmin/internal/backend"
	"hackadmin/internal/domain"
	"hackadmin/internal/filter"
	"hackadmin/internal/service"
	"hackadmin/pkg/logger"
)

// AssignmentHandler serves judge assignment and the judge roster
type AssignmentHandler struct {
	base
	assignments *service.AssignmentService
	judges      *service.JudgeService
	unassigned  *service.UnassignedService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignments *service.AssignmentService, judges *service.JudgeService, unassigned *service.UnassignedService, log *logger.Logger) *AssignmentHandler {
	return &AssignmentHandler{base: base{logger: log}, assignments: assignments, judges: judges, unassigned: unassigned}
}

// AssignRequest is the body of POST /api/console/assignments
type AssignRequest struct {
	Department            string `json:"department"`
	ParticipationCategory string `json:"participationCategory"`
	CategoryID            string `json:"categoryId"`
	domain.JudgeAssignment
}

func stateFromValues(q url.Values) filter.State {
	st := filter.State{}
	for k := range q {
		st[k] = q.Get(k)
	}
	return st
}

func assignmentQuery(r *http.Request) backend.AssignmentQuery {
	return service.AssignmentQueryFromState(stateFromValues(r.URL.Query()))
}

// Teams handles GET /api/console/assignments/teams
func (h *AssignmentHandler) Teams(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	teams, err := h.assignments.Teams(r.Context(), sess, assignmentQuery(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondSlice(h.base, w, teams)
}

// Assign handles POST /api/console/assignments
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var req AssignRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	q := backend.AssignmentQuery{
		Department:            req.Department,
		ParticipationCategory: req.ParticipationCategory,
		CategoryID:            req.CategoryID,
	}
	msg, err := h.assignments.Assign(r.Context(), sess, q, req.JudgeAssignment)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondMessage(w, http.StatusOK, msg, nil)
}

// Export handles GET /api/console/assignments/export.csv
func (h *AssignmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	exp, err := h.assignments.Export(r.Context(), sess, assignmentQuery(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondCSV(w, exp)
}

// Unassigned handles GET /api/console/unassigned
func (h *AssignmentHandler) Unassigned(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	q := r.URL.Query()
	view, err := h.unassigned.View(r.Context(), sess, service.UnassignedFilter{
		Department:            q.Get("department"),
		Category:              q.Get("category"),
		ParticipationCategory: q.Get("participationCategory"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondData(w, view, view.Message)
}

// ListJudges handles GET /api/console/judges
func (h *AssignmentHandler) ListJudges(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	judges, err := h.judges.List(r.Context(), sess, r.URL.Query().Get("q"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondSlice(h.base, w, judges)
}

// CreateJudge handles POST /api/console/judges
func (h *AssignmentHandler) CreateJudge(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var req domain.NewJudge
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	judge, msg, err := h.judges.Create(r.Context(), sess, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondMessage(w, http.StatusCreated, msg, judge)
}
