package handler

import "net/http"

// HandleHealthz reports liveness for load balancers and uptime checks.
// GET /healthz
// Response: {"status":"ok"}
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
