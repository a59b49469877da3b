package problem

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in Problem.ErrorCode.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeTimeout    = "TIMEOUT"
	CodeTooLarge   = "REQUEST_TOO_LARGE"
	CodeInternal   = "INTERNAL_ERROR"
)

type Problem struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func Write(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Problem{
		ErrorCode: code,
		Message:   message,
	})
}
