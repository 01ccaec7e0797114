package http

import (
	"net/http"
)

type addTransactionRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
}

func (s *Server) handleListFinance(w http.ResponseWriter, r *http.Request) {
	items, err := s.finance.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddFinance(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := s.finance.Add(r.Context(), sanitizeInput(req.Name), req.Amount, sanitizeInput(req.Type))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleRemoveFinance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.finance.Remove(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}
