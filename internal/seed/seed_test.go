package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cruscotto/internal/core"
	"cruscotto/internal/store"
	"cruscotto/internal/store/memory"
)

const samplePayload = `{
  "user": {"name": "Emilio"},
  "habits": [
    {"id": 1, "name": "Read", "icon": "ri-book-line", "status": true},
    {"id": 2, "name": "Run", "status": false}
  ],
  "finance": [
    {"id": 10, "name": "Rent", "amount": 1200, "type": "Expense"}
  ],
  "library": [
    {"id": 20, "title": "Il Gattopardo", "type": "book", "rating": 5}
  ]
}`

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(samplePayload), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if p.User == nil || p.User.Name != "Emilio" {
		t.Errorf("user = %+v", p.User)
	}
	if len(p.Habits) != 2 || len(p.Finance) != 1 || len(p.Library) != 1 {
		t.Errorf("payload counts = %d/%d/%d", len(p.Habits), len(p.Finance), len(p.Library))
	}
}

func TestFromFileMissingOrInvalid(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{broken"), 0o644)
	if _, err := FromFile(path); err == nil {
		t.Error("invalid JSON should fail")
	}
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	p, err := FetchURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchURL: %v", err)
	}
	if len(p.Finance) != 1 {
		t.Errorf("finance = %+v", p.Finance)
	}
}

func TestFetchURLNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := FetchURL(context.Background(), srv.URL); err == nil {
		t.Error("non-200 response should fail")
	}
}

func TestApplySeedsOnlyUnsetKeys(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	col := store.NewCollections(kv)

	// Finance already has user data; it must survive the seed.
	existing := []core.Transaction{{ID: 99, Name: "Groceries", Amount: 80, Type: "Expense"}}
	col.SaveFinance(ctx, existing)

	p, _ := parse([]byte(samplePayload))
	if err := Apply(ctx, kv, p, "2026-03-01"); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	finance, _ := col.Finance(ctx)
	if len(finance) != 1 || finance[0].ID != 99 {
		t.Errorf("seed clobbered finance: %+v", finance)
	}

	habits, _ := col.Habits(ctx)
	if len(habits) != 2 {
		t.Fatalf("habits = %+v", habits)
	}
	library, _ := col.Library(ctx)
	if len(library) != 1 {
		t.Errorf("library = %+v", library)
	}
	name, _ := col.UserName(ctx)
	if name != "Emilio" {
		t.Errorf("user name = %q", name)
	}
}

func TestApplyTranslatesLegacyStatus(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	col := store.NewCollections(kv)

	p, _ := parse([]byte(samplePayload))
	if err := Apply(ctx, kv, p, "2026-03-01"); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	habits, _ := col.Habits(ctx)
	byID := map[int64]core.Habit{}
	for _, h := range habits {
		byID[h.ID] = h
	}

	if !byID[1].CompletedOn("2026-03-01") {
		t.Error("status=true habit should be completed today")
	}
	if byID[2].CompletedOn("2026-03-01") {
		t.Error("status=false habit should not be completed")
	}
	if byID[2].Icon != core.DefaultHabitIcon {
		t.Errorf("habit without icon = %q, want default", byID[2].Icon)
	}
}

func TestMigrateLegacyHabitKeys(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	col := store.NewCollections(kv)

	col.SaveHabits(ctx, []core.Habit{
		{ID: 1, Name: "Read", CompletedDates: []string{}},
		{ID: 2, Name: "Run", CompletedDates: []string{}},
	})
	kv.Put(ctx, "habit_1", []byte("true"))
	kv.Put(ctx, "habit_2", []byte("false"))
	kv.Put(ctx, "habit_xyz", []byte("true"))

	if err := MigrateLegacyHabitKeys(ctx, kv, "2026-03-01"); err != nil {
		t.Fatalf("MigrateLegacyHabitKeys: %v", err)
	}

	habits, _ := col.Habits(ctx)
	byID := map[int64]core.Habit{}
	for _, h := range habits {
		byID[h.ID] = h
	}
	if !byID[1].CompletedOn("2026-03-01") {
		t.Error("habit_1=true should mark today completed")
	}
	if byID[2].CompletedOn("2026-03-01") {
		t.Error("habit_2=false should not mark anything")
	}

	// Every legacy key is gone afterwards, parseable or not.
	keys, _ := kv.Keys(ctx, store.LegacyHabitPrefix)
	if len(keys) != 0 {
		t.Errorf("legacy keys left behind: %v", keys)
	}
}

func TestMigrateLegacyHabitKeysNoKeys(t *testing.T) {
	ctx := context.Background()
	if err := MigrateLegacyHabitKeys(ctx, memory.New(), "2026-03-01"); err != nil {
		t.Fatalf("no-op migration: %v", err)
	}
}
