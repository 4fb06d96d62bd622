package handler

import (
	"net/http"

	"hackadmin/internal/service"
	"hackadmin/pkg/logger"
)

// PanelHandler serves judge panels
type PanelHandler struct {
	base
	panels *service.PanelService
}

// NewPanelHandler creates a new panel handler
func NewPanelHandler(panels *service.PanelService, log *logger.Logger) *PanelHandler {
	return &PanelHandler{base: base{logger: log}, panels: panels}
}

// List handles GET /api/console/panels?departments=CSE,ECE
func (h *PanelHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	panels, err := h.panels.List(r.Context(), sess, r.URL.Query()["departments"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondSlice(h.base, w, panels)
}

// Details handles GET /api/console/panels/{id}
func (h *PanelHandler) Details(w http.ResponseWriter, r *http.Request) {
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
	details, err := h.panels.Details(r.Context(), sess, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondData(w, details, "")
}

// Export handles GET /api/console/panels/{id}/export.csv
func (h *PanelHandler) Export(w http.ResponseWriter, r *http.Request) {
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
	exp, err := h.panels.Export(r.Context(), sess, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondCSV(w, exp)
}
