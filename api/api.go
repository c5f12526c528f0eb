package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/avenue-police-api/models"
)

// New creates a new mux router with the health check and request logging
func New() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
