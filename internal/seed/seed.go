// Package seed loads the legacy data.json payload that the first
// build of the dashboard fetched on page load, and applies it to a
// still-empty store. It also folds the per-habit boolean keys that
// build wrote into the completedDates representation.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"cruscotto/internal/core"
	"cruscotto/internal/store"
)

// Payload mirrors the data.json shape: an optional user block plus the
// three collections. The legacy habit entries carry a boolean status
// instead of completedDates.
type Payload struct {
	User *struct {
		Name string `json:"name"`
	} `json:"user"`
	Habits  []legacyHabit      `json:"habits"`
	Finance []core.Transaction `json:"finance"`
	Library []core.LibraryItem `json:"library"`
}

type legacyHabit struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Icon           string   `json:"icon"`
	Status         bool     `json:"status"`
	CompletedDates []string `json:"completedDates"`
}

// FromFile reads a seed payload from disk.
func FromFile(path string) (*Payload, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return parse(raw)
}

// FetchURL performs the one-shot GET of the legacy variant. No retry:
// a failure here just means the caller starts with empty collections
// and the fallback greeting.
func FetchURL(ctx context.Context, url string) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build seed request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch seed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch seed: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read seed response: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse seed payload: %w", err)
	}
	return &p, nil
}

// Apply writes the payload's collections into the store, but only for
// keys that have never been written: seeding never clobbers data the
// user has already entered. todayKey is used to translate a legacy
// status=true habit into a completion for today.
func Apply(ctx context.Context, kv store.KV, p *Payload, todayKey string) error {
	col := store.NewCollections(kv)

	if p.User != nil && p.User.Name != "" {
		if ok, err := hasKey(ctx, kv, store.KeyUserName); err != nil {
			return err
		} else if !ok {
			if err := col.SaveUserName(ctx, p.User.Name); err != nil {
				return err
			}
		}
	}

	if len(p.Finance) > 0 {
		if ok, err := hasKey(ctx, kv, store.KeyFinance); err != nil {
			return err
		} else if !ok {
			if err := col.SaveFinance(ctx, p.Finance); err != nil {
				return err
			}
			slog.InfoContext(ctx, "Seeded collection", "key", store.KeyFinance, "count", len(p.Finance))
		}
	}

	if len(p.Habits) > 0 {
		if ok, err := hasKey(ctx, kv, store.KeyHabits); err != nil {
			return err
		} else if !ok {
			habits := make([]core.Habit, 0, len(p.Habits))
			for _, lh := range p.Habits {
				h := core.Habit{
					ID:             lh.ID,
					Name:           lh.Name,
					Icon:           lh.Icon,
					CompletedDates: lh.CompletedDates,
				}
				if h.Icon == "" {
					h.Icon = core.DefaultHabitIcon
				}
				if h.CompletedDates == nil {
					h.CompletedDates = []string{}
				}
				if lh.Status && !h.CompletedOn(todayKey) {
					h.CompletedDates = append(h.CompletedDates, todayKey)
				}
				habits = append(habits, h)
			}
			if err := col.SaveHabits(ctx, habits); err != nil {
				return err
			}
			slog.InfoContext(ctx, "Seeded collection", "key", store.KeyHabits, "count", len(habits))
		}
	}

	if len(p.Library) > 0 {
		if ok, err := hasKey(ctx, kv, store.KeyLibrary); err != nil {
			return err
		} else if !ok {
			if err := col.SaveLibrary(ctx, p.Library); err != nil {
				return err
			}
			slog.InfoContext(ctx, "Seeded collection", "key", store.KeyLibrary, "count", len(p.Library))
		}
	}

	return nil
}

// MigrateLegacyHabitKeys folds habit_<id> boolean keys into the
// habit's completedDates (true counts as completed today) and deletes
// them. Keys whose id does not match a stored habit are just dropped.
func MigrateLegacyHabitKeys(ctx context.Context, kv store.KV, todayKey string) error {
	keys, err := kv.Keys(ctx, store.LegacyHabitPrefix)
	if err != nil {
		return fmt.Errorf("list legacy habit keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	col := store.NewCollections(kv)
	habits, err := col.Habits(ctx)
	if err != nil {
		return err
	}

	changed := false
	for _, key := range keys {
		idStr := strings.TrimPrefix(key, store.LegacyHabitPrefix)
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			slog.WarnContext(ctx, "Dropping unparseable legacy habit key", "key", key)
			if err := kv.Delete(ctx, key); err != nil {
				return fmt.Errorf("delete legacy key %q: %w", key, err)
			}
			continue
		}

		raw, ok, err := kv.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("get legacy key %q: %w", key, err)
		}
		done := ok && strings.TrimSpace(string(raw)) == "true"

		if done {
			for i, h := range habits {
				if h.ID == id && !h.CompletedOn(todayKey) {
					habits[i].CompletedDates = append(habits[i].CompletedDates, todayKey)
					changed = true
				}
			}
		}

		if err := kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete legacy key %q: %w", key, err)
		}
	}

	if changed {
		if err := col.SaveHabits(ctx, habits); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "Migrated legacy habit keys", "count", len(keys))
	return nil
}

func hasKey(ctx context.Context, kv store.KV, key string) (bool, error) {
	_, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	return ok, nil
}
