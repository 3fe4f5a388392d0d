package api

import (
	"errors"
	"net/http"

	"github.com/getmockd/itemd/internal/id"
	"github.com/getmockd/itemd/pkg/httputil"
	"github.com/getmockd/itemd/pkg/items"
)

// handleCreateItem handles POST /api/items.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	fields, err := s.decodeFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item := s.store.Create(fields)
	s.writeJSON(w, r, http.StatusCreated, item)
}

// handleListItems handles GET /api/items.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	filter, err := items.CompileFilter(r.URL.Query().Get("filter"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.store.Find(filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, list)
}

// handleGetItem handles GET /api/items/{id}.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.store.Get(itemID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, item)
}

// handleUpdateItem handles PUT /api/items/{id}.
// The body is decoded before the lookup, so a malformed body is a 400 even
// for an unknown identifier.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	fields, err := s.decodeFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	itemID, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.store.Update(itemID, fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, item)
}

// handleDeleteItem handles DELETE /api/items/{id}.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.store.Delete(itemID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, item)
}

// pathID extracts the {id} path value. Anything that is not a base-10
// integer cannot name an item and is reported as not found.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	itemID, ok := id.Parse(raw)
	if !ok {
		return 0, &items.NotFoundError{ID: raw}
	}
	return itemID, nil
}

// writeJSON renders data with status. A value that cannot be encoded turns
// into a 500 since nothing has been sent yet.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	err := httputil.WriteJSON(w, status, data)
	if err == nil {
		return
	}
	s.log.Error("failed to write response",
		"error", err,
		"path", r.URL.Path,
		"requestId", RequestIDFromContext(r.Context()),
	)
	if errors.Is(err, httputil.ErrEncode) {
		_ = httputil.WriteInternalError(w, "internal error")
	}
}

// writeError renders err as a JSON error body. Client errors are logged at
// debug level, anything unexpected at error level.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := items.ToErrorResponse(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"requestId", RequestIDFromContext(r.Context()),
		)
	} else {
		s.log.Debug("request rejected",
			"error", err,
			"status", status,
			"requestId", RequestIDFromContext(r.Context()),
		)
	}
	s.writeJSON(w, r, status, resp)
}
