package http

import (
	"net/http"
)

type noteBody struct {
	Text string `json:"text"`
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	text, err := s.note.Get(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, noteBody{Text: text})
}

func (s *Server) handleSaveNote(w http.ResponseWriter, r *http.Request) {
	var req noteBody
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.note.Save(r.Context(), req.Text); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
