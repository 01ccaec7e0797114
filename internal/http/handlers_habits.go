package http

import (
	"net/http"
)

type addHabitRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type toggleHabitRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	items, err := s.habits.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddHabit(w http.ResponseWriter, r *http.Request) {
	var req addHabitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	habit, err := s.habits.Add(r.Context(), sanitizeInput(req.Name), sanitizeInput(req.Icon))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, habit)
}

func (s *Server) handleRemoveHabit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.habits.Remove(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleHabit flips today's completion, or the completion for an
// explicit date when the body provides one.
func (s *Server) handleToggleHabit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	dateKey := todayKey()
	if r.ContentLength > 0 {
		var req toggleHabitRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Date != "" {
			dateKey = req.Date
		}
	}

	habit, err := s.habits.Toggle(r.Context(), id, dateKey)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, habit)
}
