package server

import (
	"encoding/json"
	"net/http"
)

func setHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}

// respondJSON sends payload with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	setHeaders(w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError sends {"error": "..."}.
func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}
