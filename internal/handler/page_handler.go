package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hackadmin/internal/filter"
	"hackadmin/internal/service"
	"hackadmin/pkg/logger"
)

// maxSettleWait bounds how long a snapshot request waits for a fetch
const maxSettleWait = 10 * time.Second

// PageHandler exposes the server-side filter controllers of the console pages
type PageHandler struct {
	base
	pages *service.PageService
}

// NewPageHandler creates a new page handler
func NewPageHandler(pages *service.PageService, log *logger.Logger) *PageHandler {
	return &PageHandler{base: base{logger: log}, pages: pages}
}

// List handles GET /api/console/pages
func (h *PageHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respondData(w, h.pages.Pages(), "")
}

// settle waits for in-flight fetches when the caller asked for it with
// ?wait=true or ?wait=<seconds>
func (h *PageHandler) settle(r *http.Request, snap service.PageSnapshot) (service.PageSnapshot, error) {
	raw := r.URL.Query().Get("wait")
	if raw == "" || raw == "false" || snap.Stage != filter.StageLoading {
		return snap, nil
	}
	wait := maxSettleWait
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 && time.Duration(secs)*time.Second < wait {
		wait = time.Duration(secs) * time.Second
	}
	sess, err := sessionOf(r)
	if err != nil {
		return snap, err
	}
	ctx, cancel := context.WithTimeout(r.Context(), wait)
	defer cancel()
	return h.pages.Settle(ctx, sess, chi.URLParam(r, "page"))
}

// Snapshot handles GET /api/console/pages/{page}
func (h *PageHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	snap, err := h.pages.Open(r.Context(), sess, chi.URLParam(r, "page"))
	if err == nil {
		snap, err = h.settle(r, snap)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondData(w, snap, snap.Prompt)
}

// SetFilters handles PUT /api/console/pages/{page}/filters. The body is a
// flat object of filter values; an empty string clears a filter.
func (h *PageHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var values filter.State
	if err := decodeJSON(r, &values); err != nil {
		h.respondError(w, r, err)
		return
	}
	snap, err := h.pages.SetFilters(r.Context(), sess, chi.URLParam(r, "page"), values)
	if err == nil {
		snap, err = h.settle(r, snap)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondData(w, snap, snap.Prompt)
}

// Refresh handles POST /api/console/pages/{page}/refresh
func (h *PageHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	snap, err := h.pages.Refresh(r.Context(), sess, chi.URLParam(r, "page"))
	if err == nil {
		snap, err = h.settle(r, snap)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondData(w, snap, snap.Prompt)
}

// Close handles DELETE /api/console/pages/{page}
func (h *PageHandler) Close(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	closed := h.pages.Close(sess, chi.URLParam(r, "page"))
	h.respondData(w, map[string]bool{"closed": closed}, "")
}
