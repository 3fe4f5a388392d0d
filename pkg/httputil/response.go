// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrEncode is returned by WriteJSON when data cannot be rendered as JSON.
// Nothing has been written to the response in that case.
var ErrEncode = errors.New("failed to encode response")

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
// The body is encoded before the status line is sent, so an ErrEncode
// failure leaves the response untouched for the caller to replace.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	if data == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteMessage writes a {"message": ...} body with the given status code.
// This is the error shape every itemd endpoint uses.
func WriteMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, map[string]string{"message": message})
}

// WriteInternalError writes a 500 Internal Server Error message response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteMessage(w, http.StatusInternalServerError, message)
}
