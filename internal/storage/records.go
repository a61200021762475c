package storage

import "github.com/matsen/expense-tracker/internal/expense"

// FindByID searches for an expense by ID in an in-memory slice.
// Returns the index of the first match and true if found, -1 and false otherwise.
func FindByID(expenses []expense.Expense, id int64) (int, bool) {
	for i, e := range expenses {
		if e.ID == id {
			return i, true
		}
	}
	return -1, false
}

// NextID returns one more than the largest ID in use, or 1 for an empty slice.
func NextID(expenses []expense.Expense) int64 {
	var maxID int64
	for _, e := range expenses {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

// DeleteFromSlice removes the first expense with the given ID.
// Returns the updated slice and true if a record was removed.
// The order of the remaining records is preserved.
func DeleteFromSlice(expenses []expense.Expense, id int64) ([]expense.Expense, bool) {
	idx, found := FindByID(expenses, id)
	if !found {
		return expenses, false
	}
	return append(expenses[:idx], expenses[idx+1:]...), true
}

// DuplicateIDs returns IDs that appear more than once, in first-seen order.
func DuplicateIDs(expenses []expense.Expense) []int64 {
	seen := make(map[int64]int, len(expenses))
	var dupes []int64
	for _, e := range expenses {
		seen[e.ID]++
		if seen[e.ID] == 2 {
			dupes = append(dupes, e.ID)
		}
	}
	return dupes
}
