package middleware

import (
	"encoding/json"
	"net/http"

	"fintrack/internal/shared/apperr"
)

type errorBody struct {
	Error   apperr.Kind `json:"error"`
	Message string      `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	writeJSONError(w, apperr.HTTPStatus(kind), kind, apperr.PublicMessage(err))
}

func writeJSONError(w http.ResponseWriter, status int, kind apperr.Kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: kind, Message: message})
}
