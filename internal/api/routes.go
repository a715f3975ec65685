package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Products
	mux.Handle("GET /api/v1/products", chain(http.HandlerFunc(h.ListProducts)))
	mux.Handle("POST /api/v1/products", chain(http.HandlerFunc(h.CreateProduct)))
	mux.Handle("GET /api/v1/products/{id}", chain(http.HandlerFunc(h.GetProduct)))

	// Schedules
	mux.Handle("GET /api/v1/schedules", chain(http.HandlerFunc(h.ListSchedules)))
	mux.Handle("PUT /api/v1/products/{id}/schedule", chain(http.HandlerFunc(h.SetSchedule)))
	mux.Handle("DELETE /api/v1/products/{id}/schedule", chain(http.HandlerFunc(h.CancelSchedule)))
	mux.Handle("DELETE /api/v1/schedules/{id}", chain(http.HandlerFunc(h.DeleteSchedule)))

	// Scheduler
	mux.Handle("POST /api/v1/scheduler/run", chain(http.HandlerFunc(h.TriggerRun)))
	mux.Handle("GET /api/v1/scheduler/status", chain(http.HandlerFunc(h.SchedulerStatus)))

	// Reports
	mux.Handle("GET /api/v1/reports/latest", chain(http.HandlerFunc(h.LatestReport)))

	// Timezones
	mux.Handle("GET /api/v1/timezones", chain(http.HandlerFunc(h.ListTimezones)))

	// Settings
	mux.Handle("GET /api/v1/settings", chain(http.HandlerFunc(h.GetSettings)))
	mux.Handle("PUT /api/v1/settings", chain(http.HandlerFunc(h.UpdateSettings)))
}
