package httputil

import (
	"encoding/json"
	"net/http"

	"pushrelay/internal/model"
)

// ErrorResponse is the body for rejected requests: {"error": "..."}
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing useful to do on failure.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteBadRequest writes a 400 with the given message.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}

// WriteDeliveryFailure writes a 500 {"success": false, "error": message}.
func WriteDeliveryFailure(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusInternalServerError, model.FailureResponse{Success: false, Error: message})
}
