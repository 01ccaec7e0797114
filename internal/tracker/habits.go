package tracker

import (
	"context"
	"errors"
	"fmt"

	"cruscotto/internal/amqp"
	"cruscotto/internal/core"
	"cruscotto/internal/store"
)

// ErrHabitNotFound is returned by Toggle for an unknown habit id.
var ErrHabitNotFound = errors.New("habit not found")

// Habits owns the habit collection.
type Habits struct {
	col    *store.Collections
	events *amqp.Client
	ids    *core.IDGenerator
}

func NewHabits(col *store.Collections, events *amqp.Client, ids *core.IDGenerator) *Habits {
	if ids == nil {
		ids = core.NewIDGenerator()
	}
	return &Habits{col: col, events: events, ids: ids}
}

func (s *Habits) List(ctx context.Context) ([]core.Habit, error) {
	return s.col.Habits(ctx)
}

func (s *Habits) Add(ctx context.Context, name, icon string) (core.Habit, error) {
	if icon == "" {
		icon = core.DefaultHabitIcon
	}
	habit := core.Habit{
		ID:             s.ids.Next(),
		Name:           name,
		Icon:           icon,
		CompletedDates: []string{},
	}
	if err := habit.Validate(); err != nil {
		return core.Habit{}, err
	}

	items, err := s.col.Habits(ctx)
	if err != nil {
		return core.Habit{}, fmt.Errorf("read habits collection: %w", err)
	}
	items = append(items, habit)
	if err := s.col.SaveHabits(ctx, items); err != nil {
		return core.Habit{}, fmt.Errorf("save habits collection: %w", err)
	}

	publishChange(ctx, s.events, store.KeyHabits, amqp.OpAdd, habit.ID)
	return habit, nil
}

func (s *Habits) Remove(ctx context.Context, id int64) error {
	items, err := s.col.Habits(ctx)
	if err != nil {
		return fmt.Errorf("read habits collection: %w", err)
	}

	kept := items[:0]
	for _, h := range items {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if err := s.col.SaveHabits(ctx, kept); err != nil {
		return fmt.Errorf("save habits collection: %w", err)
	}

	publishChange(ctx, s.events, store.KeyHabits, amqp.OpRemove, id)
	return nil
}

// Toggle flips membership of dateKey in the habit's completed dates:
// absent dates are added, present ones removed. Calling it twice with
// the same arguments restores the original state.
func (s *Habits) Toggle(ctx context.Context, id int64, dateKey string) (core.Habit, error) {
	items, err := s.col.Habits(ctx)
	if err != nil {
		return core.Habit{}, fmt.Errorf("read habits collection: %w", err)
	}

	idx := -1
	for i, h := range items {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Habit{}, ErrHabitNotFound
	}

	habit := items[idx]
	if habit.CompletedOn(dateKey) {
		kept := make([]string, 0, len(habit.CompletedDates))
		for _, d := range habit.CompletedDates {
			if d != dateKey {
				kept = append(kept, d)
			}
		}
		habit.CompletedDates = kept
	} else {
		habit.CompletedDates = append(habit.CompletedDates, dateKey)
	}
	items[idx] = habit

	if err := s.col.SaveHabits(ctx, items); err != nil {
		return core.Habit{}, fmt.Errorf("save habits collection: %w", err)
	}

	publishChange(ctx, s.events, store.KeyHabits, amqp.OpToggle, id)
	return habit, nil
}

// Progress computes the completion ratio for the given day key.
func (s *Habits) Progress(ctx context.Context, todayKey string) (core.HabitProgress, error) {
	items, err := s.col.Habits(ctx)
	if err != nil {
		return core.HabitProgress{}, fmt.Errorf("read habits collection: %w", err)
	}
	return core.ComputeHabitProgress(items, todayKey), nil
}
