package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

// WriteResult writes a service Result as JSON. The envelope's statusCode is
// mirrored onto the transport status, but callers of the API are expected to
// inspect the body regardless.
func WriteResult(w http.ResponseWriter, result *domain.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.StatusCode)
	_ = json.NewEncoder(w).Encode(result)
}

// WriteError writes an error envelope with the given status code and message.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteResult(w, &domain.Result{StatusCode: statusCode, Message: message})
}
