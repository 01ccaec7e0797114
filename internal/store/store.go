// Package store defines the Collection Store: a flat key-value port
// holding every tracked collection as one JSON-encoded value, plus a
// typed read-modify-write layer on top of it.
//
// There is deliberately no partial-update API. Callers read a whole
// collection, mutate it in memory and persist it back wholesale, which
// keeps the persistence contract identical across backends.
package store

import "context"

// Persisted keys. Each collection lives under a single key; the value
// is the JSON encoding of the whole collection.
const (
	KeyFinance  = "finance"
	KeyHabits   = "habits"
	KeyLibrary  = "library"
	KeyNote     = "quick_note"
	KeyUserName = "user_name"

	// LegacyHabitPrefix covers the per-habit boolean keys written by
	// the first data.json-backed build. Superseded by
	// Habit.CompletedDates and cleaned up at startup.
	LegacyHabitPrefix = "habit_"
)

// KV is the persistence port. Implementations must make Put durable
// before returning (synchronous from the caller's perspective) and
// must replace any prior value wholesale.
//
// A failed Put rejects the mutation: implementations never leave a
// partially written value behind.
type KV interface {
	// Get returns the stored value for key. ok is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put persists value under key, replacing any prior value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
