package httpx

import (
	"log/slog"
	"net/http"

	"github.com/formdesk/formdesk/internal/ingest"
	"github.com/formdesk/formdesk/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Dashboards   *service.DashboardManager
	Ingestor     *ingest.Ingestor
	LoginURL     LoginURLBuilderFunc
	Renderer     *Renderer
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Ingestor:     services.Ingestor,
		LoginURL:     services.LoginURL,
		Renderer:     services.Renderer,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	dashboardHandlers := &DashboardHandlers{
		Dashboards: services.Dashboards,
		Renderer:   services.Renderer,
		Logger:     logger,
	}

	// Session-only guard for role selection; session+role for the
	// dashboard and its mutations.
	requireSession := Guard(services.Auth, false)
	requireRole := Guard(services.Auth, true)

	mux.Handle("GET /{$}", http.HandlerFunc(authHandlers.Root))
	mux.Handle("GET /login", http.HandlerFunc(authHandlers.LoginPage))
	mux.Handle("GET /role-selection", requireSession(http.HandlerFunc(authHandlers.RoleSelectionPage)))
	mux.Handle("POST /role-selection", requireSession(http.HandlerFunc(authHandlers.SelectRole)))
	mux.Handle("POST /auth/logout", http.HandlerFunc(authHandlers.Logout))

	mux.Handle("GET /dashboard", requireRole(http.HandlerFunc(dashboardHandlers.Show)))
	mux.Handle("POST /dashboard/records", requireRole(http.HandlerFunc(dashboardHandlers.CreateRecord)))
	mux.Handle("POST /dashboard/records/{id}", requireRole(http.HandlerFunc(dashboardHandlers.UpdateRecord)))
	mux.Handle("POST /dashboard/records/{id}/delete", requireRole(http.HandlerFunc(dashboardHandlers.DeleteRecord)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
