package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/domain/record"
	"github.com/formdesk/formdesk/internal/service"
)

// DashboardHandlers renders the record table and forwards mutations to
// the per-session dashboard controller.
type DashboardHandlers struct {
	Dashboards *service.DashboardManager
	Renderer   *Renderer
	Logger     *slog.Logger
}

// Show handles GET /dashboard. Activation re-runs the guard-protected
// fetch on every mount rather than serving a cached decision.
func (h *DashboardHandlers) Show(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, string(domainauth.RouteLogin), http.StatusSeeOther)
		return
	}

	ctrl := h.Dashboards.ForSession(*session)
	ctrl.Activate(r.Context())

	h.Renderer.Render(w, r, "dashboard", map[string]any{
		"Email": session.User.Email,
		"View":  ctrl.Snapshot(),
	})
}

// CreateRecord handles POST /dashboard/records.
func (h *DashboardHandlers) CreateRecord(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, string(domainauth.RouteLogin), http.StatusSeeOther)
		return
	}

	ctrl := h.Dashboards.ForSession(*session)
	if err := ctrl.Create(r.Context(), fieldsFromForm(r)); err != nil {
		// The controller already recorded a user-visible message; the
		// dashboard re-render below surfaces it.
		h.Logger.WarnContext(r.Context(), "create record failed", "error", err)
	}
	http.Redirect(w, r, string(domainauth.RouteDashboard), http.StatusSeeOther)
}

// UpdateRecord handles POST /dashboard/records/{id}.
func (h *DashboardHandlers) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, string(domainauth.RouteLogin), http.StatusSeeOther)
		return
	}

	ctrl := h.Dashboards.ForSession(*session)
	if err := ctrl.Update(r.Context(), r.PathValue("id"), fieldsFromForm(r)); err != nil {
		h.Logger.WarnContext(r.Context(), "update record failed", "error", err)
	}
	http.Redirect(w, r, string(domainauth.RouteDashboard), http.StatusSeeOther)
}

// DeleteRecord handles POST /dashboard/records/{id}/delete. The first
// request renders an explicit confirmation step; only a request
// carrying the matching confirmation token issues the deletion.
func (h *DashboardHandlers) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, string(domainauth.RouteLogin), http.StatusSeeOther)
		return
	}

	id := r.PathValue("id")
	ctrl := h.Dashboards.ForSession(*session)

	confirm := r.FormValue("confirm")
	if confirm == "" {
		h.Renderer.Render(w, r, "confirm-delete", map[string]any{
			"RecordID":     id,
			"ConfirmToken": ctrl.BeginDelete(id),
		})
		return
	}

	if err := ctrl.Delete(r.Context(), id, confirm); err != nil {
		h.Logger.WarnContext(r.Context(), "delete record failed", "error", err)
	}
	http.Redirect(w, r, string(domainauth.RouteDashboard), http.StatusSeeOther)
}

func fieldsFromForm(r *http.Request) record.Fields {
	return record.Fields{
		Name:    r.FormValue("name"),
		Address: r.FormValue("address"),
		PIN:     r.FormValue("pin"),
		Phone:   r.FormValue("phone"),
	}
}
