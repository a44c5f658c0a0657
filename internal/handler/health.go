package handler

import "net/http"

// HealthHandler handles GET /healthz. It returns 200 with {"status":"ok"}
// when the server is running; kept separate from Server because it is mounted
// outside the authenticated router.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
