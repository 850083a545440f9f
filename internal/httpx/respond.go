// Package httpx holds the JSON response helpers shared by the user and
// rescue handlers.
package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteMessage writes the {"message": ...} body used by most endpoints.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"message": msg})
}

// MergeableFields strips the key field and null values from a partial
// update body, leaving the shallow merge set.
func MergeableFields(body map[string]interface{}, keyField string) map[string]interface{} {
	fields := make(map[string]interface{}, len(body))
	for k, v := range body {
		if k == keyField || v == nil {
			continue
		}
		fields[k] = v
	}
	return fields
}

// Internal reports an unexpected fault. The underlying error is logged
// server-side only; clients get a generic body, never the diagnostic
// text.
func Internal(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	WriteMessage(w, http.StatusInternalServerError, "internal server error")
}
