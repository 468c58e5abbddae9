package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes.
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Dashboard routes
	r.HandleFunc("/nav-info", handler.NavInfo).Methods("GET")
	r.HandleFunc("/bar-graph", handler.BarGraph).Methods("GET")
	r.HandleFunc("/linear-graph", handler.LinearGraph).Methods("GET")
	r.HandleFunc("/comparison", handler.Comparison).Methods("GET")
	r.HandleFunc("/national-average", handler.NationalAverage).Methods("GET")

	return r
}
