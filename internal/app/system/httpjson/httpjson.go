// Package httpjson writes the API's uniform response envelope.
//
// Every endpoint responds with {"success": bool, "data": …} on success
// or {"success": false, "error": "…"} on failure, with conventional
// status codes (400 validation/invalid state, 401/403 auth, 404 not
// found, 429 rate limited, 500 unhandled).
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK writes a 200 success envelope with data.
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope with data.
func Created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// OKMessage writes a 200 success envelope with a message and no data.
func OKMessage(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// Fail writes a failure envelope with the given status code.
func Fail(w http.ResponseWriter, status int, errMsg string) {
	write(w, status, Envelope{Success: false, Error: errMsg})
}

// BadRequest writes a 400 failure envelope.
func BadRequest(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusBadRequest, errMsg)
}

// Unauthorized writes a 401 failure envelope.
func Unauthorized(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusUnauthorized, errMsg)
}

// Forbidden writes a 403 failure envelope.
func Forbidden(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusForbidden, errMsg)
}

// NotFound writes a 404 failure envelope.
func NotFound(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusNotFound, errMsg)
}

// Internal writes a 500 failure envelope. The message is passed through
// from the underlying error; handlers log the full error before calling.
func Internal(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusInternalServerError, errMsg)
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
