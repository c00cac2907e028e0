package utils

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/jsonutil"
)

// WriteJSON serializes data through the shared JSON engine and writes it as
// the response body, setting Content-Type to "application/json" and the
// given status code first. The returned int is the number of body bytes
// written.
//
// Marshaling happens before any header is written, so a value that cannot
// be serialized yields a plain 500 instead of a half-written JSON body, and
// the wrapped marshal error is returned to the caller.
//
// Example:
//
//	WriteJSON(w, models.HealthResponse{Status: "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := jsonutil.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
