/*
server.go - HTTP router configuration

PURPOSE:
  Builds the chi router with middleware and mounts all API routes.
  The router is the single place where URL structure is defined;
  handlers never parse paths themselves.

SEE ALSO:
  - handlers.go: The handler implementations behind each route
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the full API router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Permissive CORS for local frontend development.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/{id}", h.GetUser)
			r.Get("/{id}/distribution", h.GetDistribution)
			r.Get("/{id}/leave-requests", h.ListLeaveRequests)
			r.Post("/{id}/leave-requests", h.SubmitLeaveRequest)
			r.Get("/{id}/wfh-requests", h.ListWFHRequests)
			r.Post("/{id}/wfh-requests", h.SubmitWFHRequest)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/pending", h.ListPendingRequests)
			r.Post("/{id}/approve", h.ApproveRequest)
			r.Post("/{id}/reject", h.RejectRequest)
			r.Post("/{id}/cancel", h.CancelRequest)
		})

		r.Route("/wfh-requests", func(r chi.Router) {
			r.Post("/{id}/approve", h.ApproveWFHRequest)
			r.Post("/{id}/reject", h.RejectWFHRequest)
			r.Post("/{id}/cancel", h.CancelWFHRequest)
		})

		r.Route("/leave-types", func(r chi.Router) {
			r.Get("/", h.ListLeaveTypes)
			r.Post("/", h.CreateLeaveType)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		r.Put("/admin/balances", h.UpsertBalance)
		r.Post("/seed", h.LoadSeed)
	})

	return r
}
