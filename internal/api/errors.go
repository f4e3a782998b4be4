package api

import (
	"encoding/json"
	"net/http"
)

// friendlyMessages translates known technical messages into user-facing
// text. Unknown messages pass through unchanged; the technical detail is
// still logged at the point of failure.
var friendlyMessages = map[string]string{
	"invalid login credentials":              "The email or password you entered is incorrect",
	"email already registered":               "An account with this email already exists",
	"password must be at least 8 characters": "Password must be at least 8 characters",
	"cart is empty":                          "Your cart is empty",
	"authentication required":                "Please sign in to continue",
	"an order submission is already in progress": "Your order is already being processed",
	"order not found":   "We couldn't find that order",
	"product not found": "We couldn't find that product",
	"user not found":    "We couldn't find that account",
}

func translateMessage(msg string) string {
	if friendly, ok := friendlyMessages[msg]; ok {
		return friendly
	}
	return msg
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": translateMessage(msg)})
}

// respondFieldErrors reports validation failures as a field→message map so
// the client can show every problem at once.
func respondFieldErrors(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "Validation failed",
		"fields": fields,
	})
}
