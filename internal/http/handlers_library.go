package http

import (
	"net/http"
)

type addLibraryItemRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Type   string `json:"type"`
	Rating int    `json:"rating"`
	Cover  string `json:"cover"`
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	items, err := s.library.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddLibrary(w http.ResponseWriter, r *http.Request) {
	var req addLibraryItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.library.Add(r.Context(),
		sanitizeInput(req.Title),
		sanitizeInput(req.Author),
		sanitizeInput(req.Type),
		req.Rating,
		sanitizeInput(req.Cover))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleRemoveLibrary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.library.Remove(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
