package handler

import (
	"net/http"

	"hackadmin/internal/domain"
	"hackadmin/internal/service"
	"hackadmin/pkg/logger"
)

// AdminHandler serves the dashboard, settings and the audit log
type AdminHandler struct {
	base
	dashboard *service.DashboardService
	settings  *service.SettingsService
	audit     *service.AuditService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(dashboard *service.DashboardService, settings *service.SettingsService, audit *service.AuditService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{base: base{logger: log}, dashboard: dashboard, settings: settings, audit: audit}
}

// RegistrationRequest is the body of PUT /api/console/registration
type RegistrationRequest struct {
	Open *bool `json:"open"`
}

// Dashboard handles GET /api/console/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	d, err := h.dashboard.Get(r.Context(), sess)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondData(w, d, "")
}

// Settings handles GET /api/console/settings
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	view, err := h.settings.Get(r.Context(), sess)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondData(w, view, "")
}

// UpdateSettings handles PUT /api/console/settings
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var req domain.Setting
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	msg, err := h.settings.Update(r.Context(), sess, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondMessage(w, http.StatusOK, msg, nil)
}

// SetRegistration handles PUT /api/console/registration
func (h *AdminHandler) SetRegistration(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var req RegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if req.Open == nil {
		h.respondError(w, r, errValidation("open is required"))
		return
	}
	msg, err := h.settings.SetRegistration(r.Context(), sess, *req.Open)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondMessage(w, http.StatusOK, msg, map[string]bool{"open": *req.Open})
}

// Audit handles GET /api/console/audit?actor=&action=&limit=
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	q := r.URL.Query()
	entries, err := h.audit.List(r.Context(), sess, domain.AuditFilter{
		Actor:  q.Get("actor"),
		Action: q.Get("action"),
		Limit:  queryInt(r, "limit"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondSlice(h.base, w, entries)
}
