package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cruscotto/internal/core"
	"cruscotto/internal/store"
	"cruscotto/internal/store/memory"
	"cruscotto/internal/tracker"
)

func newTestServer(t *testing.T) (*Server, *store.Collections) {
	t.Helper()

	col := store.NewCollections(memory.New())
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ids := core.NewIDGeneratorAt(func() time.Time { return base })

	s := NewServer(":0",
		tracker.NewFinance(col, nil, ids),
		tracker.NewHabits(col, nil, ids),
		tracker.NewLibrary(col, nil, ids),
		tracker.NewNote(col, nil),
		col, 2500)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})
	return s, col
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		if rec := doRequest(s, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestFinanceEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/finance", `{"name":"Rent","amount":1200,"type":"Expense"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/finance = %d: %s", rec.Code, rec.Body)
	}
	var tx core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tx.ID == 0 || tx.Name != "Rent" {
		t.Errorf("created = %+v", tx)
	}

	rec = doRequest(s, http.MethodGet, "/api/finance", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/finance = %d", rec.Code)
	}
	var items []core.Transaction
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 1 {
		t.Fatalf("list = %+v", items)
	}

	rec = doRequest(s, http.MethodDelete, fmt.Sprintf("/api/finance/%d", tx.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE = %d", rec.Code)
	}

	rec = doRequest(s, http.MethodGet, "/api/finance", "")
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 0 {
		t.Errorf("list after delete = %+v", items)
	}
}

func TestFinanceValidationFailure(t *testing.T) {
	s, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"blank name", `{"name":"  ","amount":10,"type":"Expense"}`},
		{"non-finite amount rejected at decode", `{"name":"x","amount":"NaN","type":"Expense"}`},
	}
	rec := doRequest(s, http.MethodPost, "/api/finance", cases[0].body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("%s = %d, want 422", cases[0].name, rec.Code)
	}
	rec = doRequest(s, http.MethodPost, "/api/finance", cases[1].body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("%s = %d, want 400", cases[1].name, rec.Code)
	}

	// Nothing persisted either way.
	rec = doRequest(s, http.MethodGet, "/api/finance", "")
	var items []core.Transaction
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 0 {
		t.Errorf("rejected adds persisted: %+v", items)
	}
}

func TestHabitToggleEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/habits", `{"name":"Read"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/habits = %d: %s", rec.Code, rec.Body)
	}
	var habit core.Habit
	json.Unmarshal(rec.Body.Bytes(), &habit)
	if habit.Icon != core.DefaultHabitIcon {
		t.Errorf("icon = %q, want default", habit.Icon)
	}

	toggleURL := fmt.Sprintf("/api/habits/%d/toggle", habit.ID)

	rec = doRequest(s, http.MethodPost, toggleURL, `{"date":"2026-03-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle = %d: %s", rec.Code, rec.Body)
	}
	json.Unmarshal(rec.Body.Bytes(), &habit)
	if !habit.CompletedOn("2026-03-01") {
		t.Error("toggle should mark the date")
	}

	rec = doRequest(s, http.MethodPost, toggleURL, `{"date":"2026-03-01"}`)
	json.Unmarshal(rec.Body.Bytes(), &habit)
	if habit.CompletedOn("2026-03-01") {
		t.Error("second toggle should clear the date")
	}
}

func TestHabitToggleUnknownID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/habits/424242/toggle", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("toggle unknown habit = %d, want 404", rec.Code)
	}

	rec = doRequest(s, http.MethodDelete, "/api/habits/notanumber", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("delete with bad id = %d, want 400", rec.Code)
	}
}

func TestNoteEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodPut, "/api/note", `{"text":"call the plumber"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT /api/note = %d", rec.Code)
	}

	rec = doRequest(s, http.MethodGet, "/api/note", "")
	var body noteBody
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Text != "call the plumber" {
		t.Errorf("note = %q", body.Text)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	s, col := newTestServer(t)
	ctx := context.Background()

	col.SaveUserName(ctx, "Emilio")
	doRequest(s, http.MethodPost, "/api/finance", `{"name":"Rent","amount":1200,"type":"Expense"}`)
	doRequest(s, http.MethodPost, "/api/finance", `{"name":"Gift","amount":50,"type":"Income"}`)
	rec := doRequest(s, http.MethodPost, "/api/habits", `{"name":"Read"}`)
	var habit core.Habit
	json.Unmarshal(rec.Body.Bytes(), &habit)
	doRequest(s, http.MethodPost, "/api/habits", `{"name":"Run"}`)
	doRequest(s, http.MethodPost, fmt.Sprintf("/api/habits/%d/toggle", habit.ID), "")

	rec = doRequest(s, http.MethodGet, "/api/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/dashboard = %d: %s", rec.Code, rec.Body)
	}
	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !strings.Contains(resp.Greeting, "Emilio") {
		t.Errorf("greeting = %q, want the stored name", resp.Greeting)
	}
	if resp.Habits != (core.HabitProgress{Completed: 1, Total: 2}) {
		t.Errorf("habit progress = %+v", resp.Habits)
	}
	want := core.FinanceSummary{Budget: 2500, Spent: 1200, Remaining: 1300}
	if resp.Finance != want {
		t.Errorf("finance summary = %+v, want %+v", resp.Finance, want)
	}

	// A second read hits the cache and must agree.
	rec = doRequest(s, http.MethodGet, "/api/dashboard", "")
	var again dashboardResponse
	json.Unmarshal(rec.Body.Bytes(), &again)
	if again.Finance != want {
		t.Errorf("cached summary = %+v, want %+v", again.Finance, want)
	}
}

func TestDashboardCacheInvalidatedByMutation(t *testing.T) {
	s, _ := newTestServer(t)

	doRequest(s, http.MethodGet, "/api/dashboard", "")
	doRequest(s, http.MethodPost, "/api/finance", `{"name":"Rent","amount":1200,"type":"Expense"}`)

	rec := doRequest(s, http.MethodGet, "/api/dashboard", "")
	var resp dashboardResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Finance.Spent != 1200 {
		t.Errorf("summary after mutation = %+v, want spent 1200", resp.Finance)
	}
}

func TestBackupRoundTripOverHTTP(t *testing.T) {
	s, _ := newTestServer(t)

	doRequest(s, http.MethodPost, "/api/finance", `{"name":"Rent","amount":1200,"type":"Expense"}`)
	doRequest(s, http.MethodPut, "/api/note", `{"text":"remember"}`)

	rec := doRequest(s, http.MethodGet, "/api/backup", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/backup = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	exported := rec.Body.String()

	// Restore into a fresh server.
	other, _ := newTestServer(t)
	rec = doRequest(other, http.MethodPost, "/api/backup", exported)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("POST /api/backup = %d: %s", rec.Code, rec.Body)
	}

	rec = doRequest(other, http.MethodGet, "/api/finance", "")
	var items []core.Transaction
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 1 || items[0].Name != "Rent" {
		t.Errorf("finance after restore = %+v", items)
	}
	rec = doRequest(other, http.MethodGet, "/api/note", "")
	var body noteBody
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Text != "remember" {
		t.Errorf("note after restore = %q", body.Text)
	}
}

func TestBackupImportMalformed(t *testing.T) {
	s, _ := newTestServer(t)

	doRequest(s, http.MethodPut, "/api/note", `{"text":"keep me"}`)

	rec := doRequest(s, http.MethodPost, "/api/backup", `this is not a backup`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed import = %d, want 400", rec.Code)
	}

	rec = doRequest(s, http.MethodGet, "/api/note", "")
	var body noteBody
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Text != "keep me" {
		t.Errorf("malformed import touched the store, note = %q", body.Text)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/finance", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestMutationRateLimit(t *testing.T) {
	s, _ := newTestServer(t)

	var limited bool
	for i := 0; i < 70; i++ {
		rec := doRequest(s, http.MethodPut, "/api/note", `{"text":"x"}`)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			if rec.Header().Get("Retry-After") == "" {
				t.Error("rate limited response missing Retry-After")
			}
			break
		}
	}
	if !limited {
		t.Error("mutations were never rate limited")
	}

	// Reads stay unthrottled.
	if rec := doRequest(s, http.MethodGet, "/api/note", ""); rec.Code != http.StatusOK {
		t.Errorf("GET after rate limit = %d, want 200", rec.Code)
	}
}
