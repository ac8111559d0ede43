// Package handler holds the JSON response helpers shared by the HTTP
// handlers. Every body uses the {success, data?, message?} envelope.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/vendas/internal/middleware"
)

// Envelope is the response body of every JSON endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		middleware.GetLogger(r.Context()).Error("failed to encode response", "error", err)
	}
}

// OK writes a successful envelope carrying data.
func OK(w http.ResponseWriter, r *http.Request, status int, data interface{}, message string) {
	JSON(w, r, status, Envelope{Success: true, Data: data, Message: message})
}

// Text writes a plain text body.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
