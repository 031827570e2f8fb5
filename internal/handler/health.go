package handler

import "net/http"

// Health handles GET /health - liveness probe
func Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "online",
	})
}
