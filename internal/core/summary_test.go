package core

import (
	"testing"
	"time"
)

func TestComputeHabitProgress(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		got := ComputeHabitProgress(nil, "2024-01-01")
		if got.Completed != 0 || got.Total != 0 {
			t.Errorf("progress = %+v, want {0 0}", got)
		}
	})

	t.Run("counts only today", func(t *testing.T) {
		habits := []Habit{
			{ID: 1, Name: "Read", CompletedDates: []string{"2024-01-01"}},
			{ID: 2, Name: "Run", CompletedDates: []string{"2023-12-31"}},
			{ID: 3, Name: "Write"},
		}
		got := ComputeHabitProgress(habits, "2024-01-01")
		if got.Completed != 1 || got.Total != 3 {
			t.Errorf("progress = %+v, want {1 3}", got)
		}
	})

	t.Run("completed never exceeds total", func(t *testing.T) {
		habits := []Habit{
			{ID: 1, Name: "Read", CompletedDates: []string{"2024-01-01", "2024-01-01"}},
		}
		got := ComputeHabitProgress(habits, "2024-01-01")
		if got.Completed > got.Total {
			t.Errorf("completed %d > total %d", got.Completed, got.Total)
		}
	})
}

func TestComputeFinanceSummary(t *testing.T) {
	t.Run("mixed types, case-insensitive", func(t *testing.T) {
		txs := []Transaction{
			{ID: 1, Name: "Rent", Amount: 1200, Type: "Expense"},
			{ID: 2, Name: "Gift", Amount: 50, Type: "Income"},
		}
		got := ComputeFinanceSummary(txs, 2500)
		want := FinanceSummary{Budget: 2500, Spent: 1200, Remaining: 1300}
		if got != want {
			t.Errorf("summary = %+v, want %+v", got, want)
		}
	})

	t.Run("remaining goes negative", func(t *testing.T) {
		txs := []Transaction{
			{ID: 1, Name: "Car", Amount: 3000, Type: "expense"},
		}
		got := ComputeFinanceSummary(txs, 2500)
		if got.Remaining != -500 {
			t.Errorf("remaining = %v, want -500", got.Remaining)
		}
	})

	t.Run("remaining identity", func(t *testing.T) {
		txs := []Transaction{
			{ID: 1, Name: "A", Amount: 10.5, Type: "expense"},
			{ID: 2, Name: "B", Amount: 2.25, Type: "EXPENSE"},
			{ID: 3, Name: "C", Amount: 100, Type: "income"},
		}
		for _, budget := range []float64{0, 100, -50, 2500} {
			got := ComputeFinanceSummary(txs, budget)
			if got.Remaining != got.Budget-got.Spent {
				t.Errorf("budget %v: remaining %v != budget-spent %v", budget, got.Remaining, got.Budget-got.Spent)
			}
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		got := ComputeFinanceSummary(nil, 2500)
		if got.Spent != 0 || got.Remaining != 2500 {
			t.Errorf("summary = %+v, want zero spend", got)
		}
	})
}

func TestTodayKey(t *testing.T) {
	ts := time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC)
	if got := TodayKey(ts); got != "2024-03-07" {
		t.Errorf("TodayKey = %q, want 2024-03-07", got)
	}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		name string
		hour int
		user string
		want string
	}{
		{"morning", 8, "Ada", "Good Morning, Ada"},
		{"early edge", 5, "Ada", "Good Morning, Ada"},
		{"afternoon", 12, "Ada", "Good Afternoon, Ada"},
		{"evening", 18, "Ada", "Good Evening, Ada"},
		{"night", 2, "Ada", "Good Evening, Ada"},
		{"fallback", 8, "", "Welcome, Traveler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Greeting(tt.hour, tt.user); got != tt.want {
				t.Errorf("Greeting(%d, %q) = %q, want %q", tt.hour, tt.user, got, tt.want)
			}
		})
	}
}
