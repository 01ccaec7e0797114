package core

import (
	"errors"
	"math"
	"strings"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	// DefaultHabitIcon is used when a habit is created without an icon.
	DefaultHabitIcon = "ri-star-line"
)

type (
	// Transaction is a single finance entry. Immutable once created
	// except for deletion.
	Transaction struct {
		ID     int64   `json:"id"`
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Type   string  `json:"type"`
	}

	// Habit tracks a recurring activity. CompletedDates holds the day
	// keys (YYYY-MM-DD) on which the habit was marked done, in the
	// order they were toggled on.
	Habit struct {
		ID             int64    `json:"id"`
		Name           string   `json:"name"`
		Icon           string   `json:"icon"`
		CompletedDates []string `json:"completedDates"`
	}

	// LibraryItem is a book or other media entry.
	LibraryItem struct {
		ID     int64  `json:"id"`
		Title  string `json:"title"`
		Author string `json:"author"`
		Type   string `json:"type"`
		Rating int    `json:"rating"`
		Cover  string `json:"cover"`
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyTitle    = errors.New("empty title")
	ErrInvalidAmount = errors.New("invalid amount")
)

// IsExpense reports whether the transaction counts against the budget.
// The comparison is case-insensitive because the persisted data mixes
// "Expense" and "expense".
func (t Transaction) IsExpense() bool {
	return strings.EqualFold(t.Type, TypeExpense)
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Name)) == 0 {
		return ErrEmptyName
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}

// CompletedOn reports whether the habit was marked done on the given day key.
func (h Habit) CompletedOn(dateKey string) bool {
	for _, d := range h.CompletedDates {
		if d == dateKey {
			return true
		}
	}
	return false
}

func (h Habit) Validate() error {
	if len(strings.TrimSpace(h.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

func (li LibraryItem) Validate() error {
	if len(strings.TrimSpace(li.Title)) == 0 {
		return ErrEmptyTitle
	}
	return nil
}
