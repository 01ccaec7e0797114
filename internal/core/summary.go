package core

import "time"

// HabitProgress is the completion ratio for a single day.
type HabitProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// FinanceSummary is the spend position against a fixed monthly budget.
// Remaining may go negative when spending exceeds the budget; it is
// deliberately not clamped.
type FinanceSummary struct {
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// ComputeHabitProgress counts how many habits were completed on the
// given day key. Pure function of its inputs.
func ComputeHabitProgress(habits []Habit, todayKey string) HabitProgress {
	p := HabitProgress{Total: len(habits)}
	for _, h := range habits {
		if h.CompletedOn(todayKey) {
			p.Completed++
		}
	}
	return p
}

// ComputeFinanceSummary sums expense-type transaction amounts against
// the budget. Income entries do not offset spending.
func ComputeFinanceSummary(transactions []Transaction, budget float64) FinanceSummary {
	var spent float64
	for _, t := range transactions {
		if t.IsExpense() {
			spent += t.Amount
		}
	}
	return FinanceSummary{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget - spent,
	}
}

// TodayKey formats a time as a day key (YYYY-MM-DD) in its location.
func TodayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Greeting builds the dashboard greeting for a given local hour.
// An empty name falls back to the traveler greeting from the first
// data.json-backed build.
func Greeting(hour int, name string) string {
	if name == "" {
		return "Welcome, Traveler"
	}

	switch {
	case hour >= 5 && hour < 12:
		return "Good Morning, " + name
	case hour >= 12 && hour < 18:
		return "Good Afternoon, " + name
	default:
		return "Good Evening, " + name
	}
}
