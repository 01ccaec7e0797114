package http

import (
	"log/slog"
	"net/http"
	"time"

	"cruscotto/internal/core"
	applog "cruscotto/internal/log"
)

// dashboardResponse bundles everything the landing page renders in one
// round trip.
type dashboardResponse struct {
	Greeting string              `json:"greeting"`
	Habits   core.HabitProgress  `json:"habits"`
	Finance  core.FinanceSummary `json:"finance"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	today := todayKey()

	if cached, ok := s.dashboardCache.Get(today); ok {
		slog.DebugContext(r.Context(), "Dashboard cache hit", applog.FieldKey, today)
		// Greeting depends on the hour, not just the day; recompute it.
		cached.Greeting = s.greeting(r)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	progress, err := s.habits.Progress(r.Context(), today)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	summary, err := s.finance.Summary(r.Context(), s.budget)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := dashboardResponse{
		Greeting: s.greeting(r),
		Habits:   progress,
		Finance:  summary,
	}
	s.dashboardCache.Set(today, resp)

	writeJSON(w, http.StatusOK, resp)
}

// greeting looks up the stored user name; a missing or unreadable name
// degrades to the traveler fallback rather than failing the dashboard.
func (s *Server) greeting(r *http.Request) string {
	name, err := s.col.UserName(r.Context())
	if err != nil {
		slog.WarnContext(r.Context(), "Failed to read user name", applog.FieldError, err)
		name = ""
	}
	return core.Greeting(time.Now().Hour(), name)
}
