// utils/errors.go
package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// HandleError logs the internal error, if provided, and sends the
// user-friendly message to the client.
func HandleError(w http.ResponseWriter, statusCode int, userMessage string, err ...error) {
	if len(err) > 0 && err[0] != nil {
		log.Printf("Internal error: %v", err[0])
	}

	http.Error(w, userMessage, statusCode)
}

// RespondJSON writes v as a JSON response with the given status code
func RespondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("RespondJSON: error encoding response: %v", err)
	}
}

// RespondError sends a transient error notification the way the UI shows a
// toast: a JSON payload with a single error message. Remote failures are
// converted here instead of crashing or corrupting in-memory state.
func RespondError(w http.ResponseWriter, statusCode int, message string, err ...error) {
	if len(err) > 0 && err[0] != nil {
		log.Printf("Internal error: %v", err[0])
	}
	RespondJSON(w, statusCode, map[string]string{"error": message})
}
