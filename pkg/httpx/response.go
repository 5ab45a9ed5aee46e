package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response body every endpoint returns:
// {msg, status, data, error}. Error is omitted on success.
type Envelope struct {
	Msg    string `json:"msg"`
	Status string `json:"status"`
	Data   any    `json:"data"`
	Error  string `json:"error,omitempty"`
}

// Status strings used in the envelope. The auth endpoints report
// "Failed" and the shop endpoints "failed"; existing clients match on
// the exact casing, so both are kept.
const (
	StatusSuccess    = "success"
	StatusAuthFailed = "Failed"
	StatusFailed     = "failed"
)

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, code int, msg string, data any) {
	WriteJSON(w, code, Envelope{Msg: msg, Status: StatusSuccess, Data: data})
}

// WriteFailure writes a failure envelope with the given status string.
func WriteFailure(w http.ResponseWriter, code int, msg, status, errMsg string) {
	WriteJSON(w, code, Envelope{Msg: msg, Status: status, Error: errMsg})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is required for responses carrying tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
