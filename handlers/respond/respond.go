// Package respond writes JSON responses and maps the core error taxonomy to
// HTTP status codes.
package respond

import (
	"encoding/json"
	"log"
	"net/http"

	"csrconnect/backend/models"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Error writes err as a JSON error body. ValidationError maps to 400,
// AuthorizationError to 403, NotFoundError to 404, ConflictError to 409;
// anything else is a 500 and gets logged.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case models.IsValidation(err):
		status = http.StatusBadRequest
	case models.IsAuthorization(err):
		status = http.StatusForbidden
	case models.IsNotFound(err):
		status = http.StatusNotFound
	case models.IsConflict(err):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		JSON(w, status, map[string]string{"error": "Internal server error"})
		return
	}
	JSON(w, status, map[string]string{"error": err.Error()})
}
