package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// serverError logs the cause server-side and returns a generic 500 body.
// The underlying error is never echoed to the client.
func serverError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: %v", op, err)
	writeMessage(w, http.StatusInternalServerError, "Server error")
}
