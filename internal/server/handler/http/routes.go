package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/afigueiredo/werkstatt/internal/middleware"
	"github.com/afigueiredo/werkstatt/internal/models"
)

// Handlers bundles the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Auth      *AuthHandler
	Clients   *ClientHandler
	Vehicles  *VehicleHandler
	Services  *ServiceHandler
	Budgets   *BudgetHandler
	Dashboard *DashboardHandler
	Upload    *UploadHandler
}

// NewRouter constructs the HTTP handler serving the workshop API.
//
// Routes (all under /api, JSON bodies):
//
//	POST /login                         — public
//	GET  /uploads/*                     — public static files
//	GET  /users/me
//	GET/POST /clients, GET/PATCH/DELETE /clients/{id} (DELETE admin-only)
//	GET  /clients/{id}/vehicles, POST /vehicles, PATCH /vehicles/{id}
//	GET/POST /services, GET/PATCH/DELETE /services/{id} (role-scoped)
//	GET/POST /budgets, GET/PATCH /budgets/{id}
//	POST /upload
//	GET  /dashboard/stats, GET /dashboard/recent-services?limit=
//
// Everything below the Authenticate group requires a Bearer token or
// the X-User-Id header.
func NewRouter(h Handlers, auth middleware.UserLoader, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/login", h.Auth.Login)
		r.Handle("/uploads/*", http.StripPrefix("/api/uploads/",
			http.FileServer(http.Dir(h.Upload.Dir))))

		// Protected group: requires an authenticated user
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(auth))

			r.Get("/users/me", h.Auth.Me)

			r.Get("/clients", h.Clients.List)
			r.Post("/clients", h.Clients.Create)
			r.Get("/clients/{id}", h.Clients.Get)
			r.Patch("/clients/{id}", h.Clients.Update)
			r.With(middleware.RequireRole(models.RoleAdmin)).
				Delete("/clients/{id}", h.Clients.Delete)
			r.Get("/clients/{id}/vehicles", h.Clients.ListVehicles)

			r.Post("/vehicles", h.Vehicles.Create)
			r.Patch("/vehicles/{id}", h.Vehicles.Update)

			r.Get("/services", h.Services.List)
			r.Post("/services", h.Services.Create)
			r.Get("/services/{id}", h.Services.Get)
			r.Patch("/services/{id}", h.Services.Update)
			r.Delete("/services/{id}", h.Services.Delete)

			r.Get("/budgets", h.Budgets.List)
			r.Post("/budgets", h.Budgets.Create)
			r.Get("/budgets/{id}", h.Budgets.Get)
			r.Patch("/budgets/{id}", h.Budgets.Update)

			r.Post("/upload", h.Upload.Upload)

			r.Get("/dashboard/stats", h.Dashboard.Stats)
			r.Get("/dashboard/recent-services", h.Dashboard.RecentServices)
		})
	})

	return r
}
