package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/getmockd/itemd/pkg/items"
)

// decodeFields reads a request body holding a JSON object. A body that is
// empty or not sent as application/json is an empty object. Bodies above the
// size limit are rejected with a PayloadTooLargeError, JSON bodies that are
// not an object with a ValidationError.
func (s *Server) decodeFields(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	if !isJSONContent(r) {
		return map[string]any{}, nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &items.PayloadTooLargeError{MaxSize: s.maxBodySize}
		}
		return nil, &items.ValidationError{Message: "failed to read request body"}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return map[string]any{}, nil
	}

	if !json.Valid(data) {
		return nil, &items.ValidationError{Message: "request body is not valid JSON"}
	}
	if data[0] != '{' {
		return nil, &items.ValidationError{Message: "request body must be a JSON object"}
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &items.ValidationError{Message: "request body must be a JSON object"}
	}
	return fields, nil
}

// isJSONContent reports whether the request declares a JSON body.
func isJSONContent(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
