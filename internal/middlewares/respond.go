// Package middlewares provides the HTTP middleware chain for the API server
package middlewares

import (
	"encoding/json"
	"net/http"
)

// writeError writes an error response in the same JSON shape the handlers use
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
