package handler

import (
	"net/http"

	"hackadmin/internal/service"
	"hackadmin/pkg/logger"
)

// EvaluationHandler serves final results and evaluation mutations
type EvaluationHandler struct {
	base
	evaluations *service.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluations *service.EvaluationService, log *logger.Logger) *EvaluationHandler {
	return &EvaluationHandler{base: base{logger: log}, evaluations: evaluations}
}

// DeleteEvaluationRequest is the body of DELETE /api/console/evaluations/{id}
type DeleteEvaluationRequest struct {
	Password string `json:"password"`
}

// Results handles GET /api/console/results
func (h *EvaluationHandler) Results(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	q, err := service.ResultQueryFrom(r.URL.Query().Get("participationCategory"), r.URL.Query().Get("categoryId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	groups, err := h.evaluations.Results(r.Context(), sess, q)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondSlice(h.base, w, groups)
}

// MarkQualified handles POST /api/console/teams/{id}/qualify
func (h *EvaluationHandler) MarkQualified(w http.ResponseWriter, r *http.Request) {
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
	msg, err := h.evaluations.MarkQualified(r.Context(), sess, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondMessage(w, http.StatusOK, msg, nil)
}

// DeleteEvaluation handles DELETE /api/console/evaluations/{id}
func (h *EvaluationHandler) DeleteEvaluation(w http.ResponseWriter, r *http.Request) {
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
	var req DeleteEvaluationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	msg, err := h.evaluations.DeleteEvaluation(r.Context(), sess, id, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondMessage(w, http.StatusOK, msg, nil)
}
