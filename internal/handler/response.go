package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/folioadmin/folioadmin-go/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func messageResponse(msg string) model.MessageResponse {
	return model.MessageResponse{Message: msg}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
