package handler

import (
	"encoding/json"
	"net/http"
)

// All responses share the {success: bool, ...} envelope; failures
// carry a single user-facing message.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]any {
	return map[string]any{"success": false, "error": msg}
}
