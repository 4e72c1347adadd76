package response

import (
	"encoding/json"
	"net/http"

	"github.com/ctfarena/ctfarena/internal/model"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Message writes a generic acknowledgement payload
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, model.Message{Message: message})
}
