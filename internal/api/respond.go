package api

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps any service error onto the taxonomy. HTTPErrors pass
// through with their message; everything else is logged and reported as a
// generic 500 so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	status := apperrors.StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		message = "internal server error"
	}
	respondJSON(w, status, map[string]string{"error": message})
}
